package models

// User facing messages. The API speaks Spanish.
const (
	WelcomeHeading = "Bienvenido a la Aplicación de Infracciones de Tránsito"

	RecordNotFoundMessage = "¡¡¡Registro no existe en la base de datos!!!"

	InvalidStratumMessage = "¡¡¡Estrato socioeconómico no válido!!!, por favor ingrese un valor entre 1 y 6."

	// StratumMatchedFormat takes the extracted stratum.
	StratumMatchedFormat = "Aquí tienes algunas multas relacionadas con el estrato socioeconómico: %s"

	// StratumWithoutRecordsFormat takes the extracted stratum.
	StratumWithoutRecordsFormat = "Estrato ingresado: %s. " + InvalidStratumMessage

	InternalErrorMessage     = "Error interno del servidor"
	RateLimitExceededMessage = "Demasiadas solicitudes. Por favor intente de nuevo más tarde."
	RouteNotFoundMessage     = "Not Found"
	MethodNotAllowedMessage  = "Method Not Allowed"
)
