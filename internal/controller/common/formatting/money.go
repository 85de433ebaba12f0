package formatting

import "fmt"

// FormatMoney форматирует сумму в центах: 17500 -> "$175.00"
func FormatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// ProgressBar полоса из десяти клеток для процента 0..100
func ProgressBar(percent int) string {
	percent = max(0, min(percent, 100))
	filled := percent / 10
	bar := make([]rune, 0, 10)
	for i := 0; i < 10; i++ {
		if i < filled {
			bar = append(bar, '▰')
		} else {
			bar = append(bar, '▱')
		}
	}
	return string(bar)
}
