package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/conciencia/internal/models"
)

// Add walks the user through a new entry.
func (a *App) Add(ctx context.Context) error {
	e := &models.Entry{}

	desc, err := getSimpleText(a.reader, "Descripción", a.out)
	if err != nil {
		return err
	}
	e.Description = desc

	stateText, err := getSimpleText(a.reader, "Estado: (p)lanificado, (e)n progreso, (r)ealizado, (a)daptado [p]", a.out)
	if err != nil {
		return err
	}
	if e.State, err = parseState(stateText); err != nil {
		return err
	}

	startText, err := getSimpleText(a.reader, "Inicio (HH:MM o YYYY-MM-DD HH:MM, vacío si no aplica)", a.out)
	if err != nil {
		return err
	}
	if e.Start, err = a.parseWhen(startText); err != nil {
		return err
	}

	endText, err := getSimpleText(a.reader, "Fin (HH:MM o YYYY-MM-DD HH:MM, vacío si no aplica)", a.out)
	if err != nil {
		return err
	}
	if e.End, err = a.parseWhen(endText); err != nil {
		return err
	}

	labels, err := GetList(a.reader, "Etiquetas", a.out)
	if err != nil {
		return err
	}
	e.Labels = labels

	agents, err := GetList(a.reader, "Foco / agentes", a.out)
	if err != nil {
		return err
	}
	e.FocusAgents = agents

	if e.EstimatedMinutes, err = GetOptionalInt(a.reader, "Duración estimada en minutos (opcional)", a.out); err != nil {
		return err
	}
	if e.Priority, err = GetOptionalInt(a.reader, "Prioridad 0-10 (opcional)", a.out); err != nil {
		return err
	}

	place, err := getSimpleText(a.reader, "Lugar (opcional)", a.out)
	if err != nil {
		return err
	}
	if place != "" {
		e.Location = &place
	}

	created, err := a.journal.Add(ctx, e)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registro creado: %s\n", created.ID)
	return nil
}

// List prints completed entries, latest first.
func (a *App) List(ctx context.Context) error {
	views, err := a.journal.History(ctx)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		fmt.Fprintln(a.out, "No hay registros realizados.")
		return nil
	}
	for _, v := range views {
		fmt.Fprintln(a.out, a.formatEntry(v))
	}
	return nil
}

// Intentions prints planned entries; "priority" orders them by priority.
func (a *App) Intentions(ctx context.Context, args []string) error {
	sort := ""
	if len(args) > 0 {
		sort = args[0]
	}
	views, err := a.journal.Intentions(ctx, sort)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		fmt.Fprintln(a.out, "No hay intenciones planificadas.")
		return nil
	}
	for _, v := range views {
		fmt.Fprintln(a.out, a.formatEntry(v))
	}
	return nil
}

// SetState moves the entry named in args into state.
func (a *App) SetState(ctx context.Context, args []string, state models.State) error {
	if len(args) != 1 {
		return usageError("start|done|skip <id>")
	}
	e, err := a.journal.SetState(ctx, args[0], state)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s ahora está en %q.\n", e.ID, e.State)
	return nil
}

// Note adds a note of the user to an entry.
func (a *App) Note(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("note <id>")
	}

	kindText, err := getSimpleText(a.reader, "¿(p)rospectiva o (r)etrospectiva? [r]", a.out)
	if err != nil {
		return err
	}
	kind := models.NoteRetrospective
	if strings.HasPrefix(strings.ToLower(kindText), "p") {
		kind = models.NoteProspective
	}

	text, err := GetMultiline(a.reader, "Nota", a.out)
	if err != nil {
		return err
	}

	n, err := a.journal.AddNote(ctx, args[0], text, kind)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Nota añadida a %s.\n", n.EntryID)
	return nil
}

// Notes prints the notes of an entry, oldest first.
func (a *App) Notes(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("notes <id>")
	}
	notes, err := a.journal.Notes(ctx, args[0])
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "Sin notas.")
		return nil
	}
	for _, n := range notes {
		fmt.Fprintln(a.out, a.formatNote(n))
	}
	return nil
}
