package purchasing

import (
	"fmt"
	"strconv"
	"strings"
)

const orderNumberPrefix = "OC"

// OrderNumberPrefix prefijo de numeración de un año: "OC-2026-".
func OrderNumberPrefix(year int) string {
	return fmt.Sprintf("%s-%d-", orderNumberPrefix, year)
}

// NextOrderNumber genera el siguiente número a partir del último del año (vacío si no hay).
// Un último número que no pertenezca al año o no tenga secuencia válida reinicia en 0001.
func NextOrderNumber(year int, last string) string {
	prefix := OrderNumberPrefix(year)
	seq := 0
	if strings.HasPrefix(last, prefix) {
		if n, err := strconv.Atoi(strings.TrimPrefix(last, prefix)); err == nil && n > 0 {
			seq = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1)
}

// ParseOrderNumber devuelve año y secuencia de un número OC-YYYY-NNNN.
func ParseOrderNumber(number string) (year, seq int, ok bool) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != orderNumberPrefix || len(parts[1]) != 4 || len(parts[2]) < 4 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	s, err := strconv.Atoi(parts[2])
	if err != nil || s <= 0 {
		return 0, 0, false
	}
	return y, s, true
}
