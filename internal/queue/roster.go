package queue

// DefaultRoster - Operator companies seeded on an empty board, in their
// initial turn order.
var DefaultRoster = []string{
	"Jovi extreme",
	"Aqua sport",
	"Nauticas Guatape",
	"La ola del jetski",
	"Motonáutica",
	"Imperial jet ski",
	"Jet ski tours",
	"Timon",
	"Merak guatape",
	"Yates premium",
	"Servi jet ski",
	"Guatape extremo",
	"Gotravel",
	"Los colores",
	"Travel gold",
	"Esto es guatape",
	"Adventure Guatape",
	"Náuticos recreacion",
	"Jet ski aventura",
	"Casa corona",
	"Plus travel",
	"Dinococo",
	"Embarcar",
	"Jet ski Arai",
	"Diversiones náuticas guatape",
	"Hydro",
	"Zarpe náutico",
	"Acuátic rental",
}
