package model

// PaymentResult ответ платёжного сервиса на попытку оплаты
type PaymentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
