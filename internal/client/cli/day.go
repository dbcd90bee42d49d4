package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/conciencia/internal/timeline"
)

// Timeline prints the day split into recorded and empty segments. Empty
// segments are numbered for annotate.
func (a *App) Timeline(ctx context.Context, args []string) error {
	date := ""
	if len(args) > 0 {
		date = args[0]
	}
	day, err := a.journal.Timeline(ctx, date)
	if err != nil {
		return err
	}
	a.lastDate = day.Date

	fmt.Fprintf(a.out, "Línea de tiempo del %s\n", day.Date)
	gap := 0
	for _, seg := range day.Segments {
		span := fmt.Sprintf("%s-%s", a.clock(&seg.Start), a.clock(&seg.End))
		dur := timeline.FormatMinutes(seg.DurationMinutes)
		if seg.Kind == timeline.KindEmpty {
			gap++
			fmt.Fprintf(a.out, "  #%-2d %s  vacío (%s)\n", gap, span, dur)
			continue
		}
		desc := ""
		if seg.Entry != nil {
			desc = seg.Entry.Description
		}
		fmt.Fprintf(a.out, "      %s  %s (%s)\n", span, desc, dur)
	}
	fmt.Fprintf(a.out, "Tiempo vacío total: %s\n", timeline.FormatMinutes(day.TotalEmptyMinutes))
	return nil
}

// Annotate labels the n-th empty segment of the last printed timeline, or of
// today when no timeline was printed yet.
func (a *App) Annotate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("annotate <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return usageError("annotate <n>")
	}

	labels, err := GetList(a.reader, "Etiquetas", a.out)
	if err != nil {
		return err
	}
	note, err := getSimpleText(a.reader, "Nota (opcional)", a.out)
	if err != nil {
		return err
	}

	p, err := a.journal.AnnotateGap(ctx, a.lastDate, n, labels, note)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Periodo anotado: %s\n", a.formatPeriod(p))
	return nil
}

// EmptyPeriods lists annotated empty periods in an optional date range.
func (a *App) EmptyPeriods(ctx context.Context, args []string) error {
	var from, to string
	if len(args) > 0 {
		from = args[0]
	}
	if len(args) > 1 {
		to = args[1]
	}

	periods, err := a.journal.EmptyPeriods(ctx, from, to)
	if err != nil {
		return err
	}
	if len(periods) == 0 {
		fmt.Fprintln(a.out, "No hay periodos vacíos anotados.")
		return nil
	}
	for _, p := range periods {
		fmt.Fprintln(a.out, "  "+a.formatPeriod(p))
	}
	return nil
}

// Insights prints the observations about the last weeks.
func (a *App) Insights(ctx context.Context) error {
	insights, err := a.journal.Insights(ctx)
	if err != nil {
		return err
	}
	if len(insights) == 0 {
		fmt.Fprintln(a.out, "Nada destacable por ahora.")
		return nil
	}
	for _, in := range insights {
		fmt.Fprintf(a.out, "* [%s] %s\n", in.Type, in.Message)
	}
	return nil
}
