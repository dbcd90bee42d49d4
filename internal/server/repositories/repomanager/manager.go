package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/conciencia/internal/dbx"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/consultations"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/entries"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/notes"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/periods"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/users"
)

// RepositoryManager binds repositories to a connection or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Entries(db dbx.DBTX) entries.Repository
	Notes(db dbx.DBTX) notes.Repository
	Periods(db dbx.DBTX) periods.Repository
	Consultations(db dbx.DBTX) consultations.Repository
}
