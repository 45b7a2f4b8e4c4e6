package telegram

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/leadreports/lead-report-bot/internal/domain"
	"github.com/leadreports/lead-report-bot/internal/usecases/reporting"
)

const helpText = `📋 Доступные команды:

/report — отчёт за сегодня
/report 22.02.2026 — за конкретный день
/report 22.02 — за день текущего года
/report 01.02-22.02 — за период
/report месяц — за текущий месяц

Автоматический отчёт приходит каждый день в 20:00 по Киеву.`

const accessDeniedText = "⛔ Команда /report доступна только администраторам."

var platformTitles = map[string]string{
	domain.PlatformFacebook:  "FB",
	domain.PlatformInstagram: "IG",
	domain.PlatformMessenger: "MSG",
	domain.PlatformOther:     "ДРУГОЕ",
}

// RenderReport turns a report into the Markdown message posted to the chat.
func RenderReport(report *domain.Report) string {
	label := windowLabel(report.Window)

	if report.Empty() {
		return fmt.Sprintf("📭 За %s заявок не поступало.", label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Отчёт за %s*\n", label)
	b.WriteString("━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "📥 Всего заявок: *%d*\n", report.Total)
	if report.Duplicates > 0 {
		fmt.Fprintf(&b, "♻️ Дубликатов отсеяно: %d\n", report.Duplicates)
	}

	b.WriteString("\n🏙 *Города:*\n")
	writeBuckets(&b, report.Cities, report.Total, true)

	b.WriteString("\n📐 *Площадь:*\n")
	writeBuckets(&b, report.Areas, report.Total, false)

	b.WriteString("\n📱 *Платформы:* ")
	b.WriteString(renderPlatforms(report.Platforms))

	return b.String()
}

func writeBuckets(b *strings.Builder, buckets []domain.BucketCount, total int, titled bool) {
	for _, bucket := range buckets {
		name := bucket.Name
		if titled {
			name = titleCase(name)
		}
		fmt.Fprintf(b, "  • %s — %d (%s)\n", name, bucket.Count, percent(bucket.Count, total))
	}
}

func renderPlatforms(buckets []domain.BucketCount) string {
	parts := make([]string, 0, len(buckets))
	for _, bucket := range buckets {
		if bucket.Count == 0 && bucket.Name == domain.PlatformOther {
			continue
		}
		title, ok := platformTitles[bucket.Name]
		if !ok {
			title = strings.ToUpper(bucket.Name)
		}
		parts = append(parts, fmt.Sprintf("%s: %d", title, bucket.Count))
	}
	return strings.Join(parts, " | ")
}

func windowLabel(w domain.Window) string {
	switch w.Kind {
	case domain.WindowKindToday:
		return fmt.Sprintf("сегодня (%s)", w.Label)
	case domain.WindowKindMonth:
		return fmt.Sprintf("месяц (%s)", w.Label)
	default:
		return w.Label
	}
}

// errorMessage maps a pipeline failure to the operator-facing text, echoing
// the offending expression where there is one.
func errorMessage(err error) string {
	expression, _ := reporting.ExpressionFromError(err)

	switch {
	case errors.Is(err, reporting.ErrInvalidDate):
		return fmt.Sprintf("⚠️ Некорректная дата: «%s». Проверьте день, месяц и порядок дат.", expression)
	case errors.Is(err, reporting.ErrUnknownMonth):
		return fmt.Sprintf("⚠️ Не знаю такого месяца: «%s».", expression)
	case errors.Is(err, reporting.ErrUnrecognizedFormat):
		return fmt.Sprintf("⚠️ Не понимаю аргумент «%s». Форматы: /help", expression)
	case errors.Is(err, reporting.ErrDataSourceUnavailable):
		return "⚠️ База заявок временно недоступна, попробуйте позже."
	default:
		return "⚠️ Не получилось построить отчёт, попробуйте позже."
	}
}

func percent(count, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(count)/float64(total)*100)
}

// titleCase capitalizes the first letter of every word, the way city names
// are shown in the report.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
