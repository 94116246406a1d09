package models

// ChatbotResponse is the body returned by the chatbot endpoint.
type ChatbotResponse struct {
	Message string             `json:"respuesta"`
	Records []InfractionRecord `json:"Multas"`
}

// NewChatbotResponse never returns a nil record list so that it always
// encodes as a JSON array.
func NewChatbotResponse(message string, records []InfractionRecord) ChatbotResponse {
	if records == nil {
		records = []InfractionRecord{}
	}
	return ChatbotResponse{
		Message: message,
		Records: records,
	}
}

// ErrorResponse carries a human readable error message.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

