package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/conciencia/internal/api"
)

// Export writes the export document to a file. A trailing "empty" adds the
// annotated empty periods.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 || (len(args) == 2 && args[1] != "empty") {
		return usageError("export <archivo> [empty]")
	}
	opts := api.ExportRequest{IncludeEmptyPeriods: len(args) == 2}

	n, err := a.data.Export(ctx, args[0], opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exportados %d bytes a %s\n", n, args[0])
	return nil
}

// Backup stores a full export, empty periods included, in the server's
// object storage and prints the download link.
func (a *App) Backup(ctx context.Context) error {
	link, err := a.data.Backup(ctx, api.ExportRequest{IncludeEmptyPeriods: true})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Copia guardada en %s\nEnlace (válido hasta %s):\n%s\n",
		link.Key, link.ExpiresAt.In(a.loc).Format(dateTimeLayout), link.URL)
	return nil
}

// Import merges a local file or a downloaded document.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("import <archivo|url>")
	}
	res, err := a.data.Import(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Notas del mentor añadidas: %d\n", res.NotesAdded)
	fmt.Fprintf(a.out, "Registros sugeridos creados: %d\n", res.EntriesSuggested)
	if res.Skipped > 0 {
		fmt.Fprintf(a.out, "Elementos omitidos: %d\n", res.Skipped)
	}
	if res.EmptyPeriodsIgnored > 0 {
		fmt.Fprintf(a.out, "Periodos vacíos no importados: %d\n", res.EmptyPeriodsIgnored)
	}
	if res.SuggestionStored {
		fmt.Fprintln(a.out, "Nueva sugerencia del mentor guardada (ver 'suggestion').")
	}
	return nil
}

// Suggestion shows the mentor suggestion kept locally.
func (a *App) Suggestion(ctx context.Context) error {
	sug, e, err := a.journal.Suggestion(ctx)
	if err != nil {
		return err
	}
	if sug == nil {
		fmt.Fprintln(a.out, "No hay sugerencia del mentor.")
		return nil
	}

	if e != nil {
		fmt.Fprintf(a.out, "Enfoque sugerido: %s (%s)\n", e.Description, e.ID)
	} else {
		fmt.Fprintf(a.out, "Enfoque sugerido: registro %s (no encontrado)\n", sug.EntryID)
	}
	if sug.Message != nil && *sug.Message != "" {
		fmt.Fprintf(a.out, "Mensaje: %s\n", *sug.Message)
	}
	return nil
}

func (a *App) ClearSuggestion(ctx context.Context) error {
	if err := a.journal.ClearSuggestion(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Sugerencia descartada.")
	return nil
}
