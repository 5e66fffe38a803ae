package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost recalcula el costo unitario de un insumo tras una entrada:
// ((stock * costo) + (cantidad * costoEntrada)) / (stock + cantidad), redondeado a 4 decimales.
// Un stock previo negativo se trata como cero para no contaminar el promedio.
func WeightedAverageCost(stock, cost, qty, unitCost decimal.Decimal) decimal.Decimal {
	if stock.IsNegative() {
		stock = decimal.Zero
	}
	sum := stock.Add(qty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return unitCost
	}
	num := stock.Mul(cost).Add(qty.Mul(unitCost))
	return num.Div(sum).Round(4)
}
