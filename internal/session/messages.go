package session

import "fmt"

func correctMessage(points, bonus int) string {
	msg := fmt.Sprintf("¡Correcto! %+d puntos.", points)
	if bonus > 0 {
		msg += fmt.Sprintf(" +%d s para el siguiente ejercicio.", bonus)
	}
	return msg
}

func incorrectMessage(sum, points int) string {
	return fmt.Sprintf("Incorrecto. La respuesta era %d. %d punto(s).", sum, points)
}

func invalidMessage(points int) string {
	msg := "Entrada inválida. Por favor, ingresa un número."
	if points != 0 {
		msg += fmt.Sprintf(" %d punto(s).", points)
	}
	return msg
}

func timeoutMessage(sum, points int) string {
	return fmt.Sprintf("¡Se acabó el tiempo! La respuesta era %d. %d punto(s).", sum, points)
}

func lateMessage() string {
	return "El tiempo para ese ejercicio ya se había agotado."
}

func gameOverMessage(score int) string {
	return fmt.Sprintf("¡Tiempo total agotado! Puntuación final: %d.", score)
}
