package handler

import "backend-turnero/internal/queue"

var resultMessages = map[string]string{
	queue.MsgSwapApplied:        "Orden actualizado",
	queue.MsgSwapBoundary:       "La embarcación ya está en el extremo de la lista",
	queue.MsgRepositionApplied:  "Embarcación reubicada",
	queue.MsgRepositionSame:     "La embarcación ya está en esa posición",
	queue.MsgAdvanceApplied:     "Siguiente turno",
	queue.MsgAdvanceNoCandidate: "No hay embarcaciones EN TURNO, se limpió el embarque",
	queue.MsgResetApplied:       "Todas las embarcaciones quedaron EN TURNO",
	queue.MsgResetUnconfirmed:   "Confirme el reinicio enviando confirm=true",
	queue.MsgStatusApplied:      "Estado actualizado",
	queue.MsgStatusUnchanged:    "La embarcación ya tiene ese estado",
	queue.MsgReorganized:        "Cola reorganizada",
	queue.MsgBoardEmpty:         "No hay embarcaciones registradas",
	queue.MsgNotFound:           "Embarcación no encontrada",
	queue.MsgInvalidInput:       "Solicitud inválida",
	queue.MsgStoreFailed:        "No se pudo guardar el cambio, intente de nuevo",
}

func resultMessage(res queue.Result) string {
	msg, ok := resultMessages[res.Message]
	if !ok {
		msg = res.Message
	}
	if res.Message == queue.MsgAdvanceApplied && res.Vessel != nil {
		msg += ": " + res.Vessel.DisplayName
	}
	return msg
}
