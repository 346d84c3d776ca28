// Package payment описывает клиента внешнего платёжного сервиса
// и сверку баланса кошелька после спорного ответа об оплате.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/mentor_bot/internal/model"
)

// ErrUnavailable платёжный сервис не ответил или ответил некорректно
var ErrUnavailable = errors.New("payment service unavailable")

// Client исходящий порт к платёжному сервису
type Client interface {
	// Pay списывает оплату за черновик записи с кошелька пользователя
	Pay(ctx context.Context, req PayRequest) (model.PaymentResult, error)
	// GetBalance возвращает баланс кошелька в денежном формате, например "1 250,00 ₽"
	GetBalance(ctx context.Context, walletID string) (string, error)
}

// PayRequest запрос на оплату сессии из корзины
type PayRequest struct {
	WalletID   string
	Draft      model.BookingDraft
	MentorName string
}

// DeclinedError платёжный сервис сообщил об отказе, и сверка баланса его подтвердила
type DeclinedError struct {
	Message string
}

func (e *DeclinedError) Error() string {
	if e.Message == "" {
		return "payment declined"
	}
	return fmt.Sprintf("payment declined: %s", e.Message)
}
