package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/conciencia/internal/client/client"
	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/models"
)

// printFn and printlnFn are test seams for user-facing output.
var (
	printFn   = fmt.Print
	printlnFn = fmt.Println
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Intentions(ctx context.Context, args []string) error
	SetState(ctx context.Context, args []string, state models.State) error
	Note(ctx context.Context, args []string) error
	Notes(ctx context.Context, args []string) error
	Timeline(ctx context.Context, args []string) error
	Annotate(ctx context.Context, args []string) error
	EmptyPeriods(ctx context.Context, args []string) error
	Insights(ctx context.Context) error
	Export(ctx context.Context, args []string) error
	Backup(ctx context.Context) error
	Import(ctx context.Context, args []string) error
	Suggestion(ctx context.Context) error
	ClearSuggestion(ctx context.Context) error
}

const helpGuest = `Comandos: register, login, help, exit`

const helpUser = `Comandos:
  add                         nuevo registro
  list                        registros realizados
  intentions [priority]       intenciones planificadas
  start|done|skip <id>        cambiar estado
  note <id> / notes <id>      añadir / ver notas
  timeline [YYYY-MM-DD]       línea de tiempo del día
  annotate <n>                anotar el n-ésimo periodo vacío del último timeline
  empty [desde] [hasta]       periodos vacíos anotados
  insights                    patrones recientes
  export <archivo> [empty]    exportar a un archivo
  backup                      exportar al almacenamiento del servidor
  import <archivo|url>        importar registros o sugerencias del mentor
  suggestion                  ver la sugerencia del mentor
  clear-suggestion            descartar la sugerencia del mentor
  logout, help, exit`

// runREPL reads commands from reader until EOF or exit. Command errors are
// printed and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(prompt(statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("¡Hasta luego!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn(describeError(err))
		}
	}
}

func prompt(status string) string {
	if status == "" {
		return "conciencia> "
	}
	return fmt.Sprintf("conciencia (%s)> ", status)
}

var errUnknownCommand = errors.New("comando desconocido")

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpUser)
		} else {
			printlnFn(helpGuest)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		printlnFn("Primero inicia sesión con 'login'.")
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "add":
		return a.Add(ctx)
	case "list", "l":
		return a.List(ctx)
	case "intentions":
		return a.Intentions(ctx, args)
	case "start":
		return a.SetState(ctx, args, models.StateInProgress)
	case "done":
		return a.SetState(ctx, args, models.StateDone)
	case "skip":
		return a.SetState(ctx, args, models.StateSkipped)
	case "note":
		return a.Note(ctx, args)
	case "notes":
		return a.Notes(ctx, args)
	case "timeline":
		return a.Timeline(ctx, args)
	case "annotate":
		return a.Annotate(ctx, args)
	case "empty":
		return a.EmptyPeriods(ctx, args)
	case "insights":
		return a.Insights(ctx)
	case "export":
		return a.Export(ctx, args)
	case "backup":
		return a.Backup(ctx)
	case "import":
		return a.Import(ctx, args)
	case "suggestion":
		return a.Suggestion(ctx)
	case "clear-suggestion":
		return a.ClearSuggestion(ctx)
	}
	return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
}

// usageError is returned when a command is called with the wrong arguments.
type usageError string

func (u usageError) Error() string { return "uso: " + string(u) }

func describeError(err error) string {
	var usage usageError
	switch {
	case errors.As(err, &usage):
		return usage.Error()
	case errors.Is(err, errUnknownCommand):
		return err.Error() + " (escribe 'help')"
	case errors.Is(err, client.ErrUnavailable):
		return "El servidor no está disponible."
	case errors.Is(err, client.ErrSessionExpired):
		return "La sesión ha caducado; vuelve a iniciar sesión."
	case errors.Is(err, client.ErrUnauthorized), errors.Is(err, common.ErrorUnauthenticated):
		return "No autorizado."
	case errors.Is(err, common.ErrorNotFound):
		return "No encontrado."
	case errors.Is(err, common.ErrorAlreadyExists):
		return "Ya existe."
	}
	return "error: " + err.Error()
}
