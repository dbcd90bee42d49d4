package timeline

import "fmt"

// FormatMinutes renders a minute count the way the daily summary shows it,
// e.g. "2 horas y 5 minutos".
func FormatMinutes(total int) string {
	if total < 0 {
		total = 0
	}
	hours, minutes := total/60, total%60

	unit := func(n int, one, many string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, one)
		}
		return fmt.Sprintf("%d %s", n, many)
	}

	switch {
	case hours == 0:
		return unit(minutes, "minuto", "minutos")
	case minutes == 0:
		return unit(hours, "hora", "horas")
	default:
		return unit(hours, "hora", "horas") + " y " + unit(minutes, "minuto", "minutos")
	}
}
