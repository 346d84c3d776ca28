package payment

import "github.com/shopspring/decimal"

// Tolerance допустимое расхождение баланса при сверке
var Tolerance = decimal.New(1, -2)

// Reconcile проверяет, что оплата фактически прошла, несмотря на ответ об ошибке:
// текущий баланс должен совпасть с previous - amount с точностью до Tolerance.
func Reconcile(previous, current, amount decimal.Decimal) bool {
	expected := previous.Sub(amount)
	return current.Sub(expected).Abs().LessThan(Tolerance)
}
