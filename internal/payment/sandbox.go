package payment

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/shopspring/decimal"
)

// SandboxMode поведение песочницы при оплате
type SandboxMode int

const (
	// SandboxNormal списывает деньги и честно сообщает результат
	SandboxNormal SandboxMode = iota
	// SandboxFalseFailure списывает деньги, но сообщает об ошибке
	SandboxFalseFailure
	// SandboxDecline ничего не списывает и сообщает об ошибке
	SandboxDecline
)

var sandboxModeNames = map[SandboxMode]string{
	SandboxNormal:       "normal",
	SandboxFalseFailure: "false_failure",
	SandboxDecline:      "decline",
}

// ParseSandboxMode разбирает режим песочницы из конфига; пустая строка значит normal
func ParseSandboxMode(raw string) (SandboxMode, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return SandboxNormal, nil
	}
	for mode, modeName := range sandboxModeNames {
		if modeName == name {
			return mode, nil
		}
	}
	return SandboxNormal, fmt.Errorf("unknown sandbox mode %q", raw)
}

func (m SandboxMode) String() string {
	if name, ok := sandboxModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("SandboxMode(%d)", int(m))
}

// Sandbox платёжный сервис в памяти для разработки и тестов
type Sandbox struct {
	mu             sync.Mutex
	initialBalance decimal.Decimal
	wallets        map[string]decimal.Decimal
	mode           SandboxMode
	payments       int
}

// NewSandbox создаёт песочницу, где каждый новый кошелёк получает initialBalance
func NewSandbox(initialBalance decimal.Decimal) *Sandbox {
	return &Sandbox{
		initialBalance: initialBalance,
		wallets:        make(map[string]decimal.Decimal),
	}
}

// SetMode переключает поведение песочницы
func (s *Sandbox) SetMode(mode SandboxMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// Payments возвращает количество попыток оплаты
func (s *Sandbox) Payments() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payments
}

func (s *Sandbox) Pay(ctx context.Context, req PayRequest) (model.PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return model.PaymentResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.payments++
	balance := s.walletLocked(req.WalletID)

	if s.mode == SandboxDecline {
		return model.PaymentResult{Success: false, Message: "Платёж отклонён банком"}, nil
	}

	if balance.LessThan(req.Draft.Amount) {
		return model.PaymentResult{Success: false, Message: "Недостаточно средств на балансе"}, nil
	}

	s.wallets[req.WalletID] = balance.Sub(req.Draft.Amount)

	if s.mode == SandboxFalseFailure {
		return model.PaymentResult{Success: false, Message: "Таймаут ответа банка"}, nil
	}

	return model.PaymentResult{Success: true, Message: "Оплата прошла успешно"}, nil
}

func (s *Sandbox) GetBalance(ctx context.Context, walletID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fmt.Sprintf("%s ₽", s.walletLocked(walletID).StringFixed(2)), nil
}

func (s *Sandbox) walletLocked(walletID string) decimal.Decimal {
	balance, ok := s.wallets[walletID]
	if !ok {
		balance = s.initialBalance
		s.wallets[walletID] = balance
	}
	return balance
}
