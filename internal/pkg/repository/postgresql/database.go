// Package postgresql wraps bun with the cross-cutting pieces every repository
// needs: claims extraction, required-field validation, soft deletes and
// constraint-violation classification.
package postgresql

import (
	"context"
	"database/sql"
	"net/http"
	"reflect"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"ems/backend/foundation/web"
	"ems/backend/internal/auth"
)

type Database struct {
	*bun.DB
}

type Config struct {
	Addr       string
	User       string
	Password   string
	Name       string
	DisableTLS bool
	Debug      bool
}

func NewDatabase(cfg Config) *Database {
	opts := []pgdriver.Option{
		pgdriver.WithAddr(cfg.Addr),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.Name),
		pgdriver.WithTimeout(10 * time.Second),
	}
	if cfg.DisableTLS {
		opts = append(opts, pgdriver.WithInsecure(true))
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	return &Database{DB: db}
}

// CheckClaims pulls the authenticated identity out of the context and, when
// roles are given, requires one of them. Fails closed: no identity means 401,
// wrong role means 403.
func (d *Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, err := auth.GetClaims(ctx.Value(auth.Key))
	if err != nil {
		return auth.Claims{}, err
	}

	if !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	return claims, nil
}

// ValidateStruct checks that the named fields of a request struct were
// provided. Pointer fields must be non-nil, value fields non-zero.
func (d *Database) ValidateStruct(s interface{}, requiredFields ...string) error {
	v := reflect.ValueOf(s)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	fields := map[string]string{}
	for _, name := range requiredFields {
		f := v.FieldByName(name)
		if !f.IsValid() {
			continue
		}
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				fields[name] = "required field"
			}
			continue
		}
		if f.IsZero() {
			fields[name] = "required field"
		}
	}

	if len(fields) > 0 {
		return &web.Error{
			Err:    errors.New("required fields are missing"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// DeleteRow soft-deletes a row, recording who removed it.
func (d *Database) DeleteRow(ctx context.Context, table string, id int) error {
	claims, err := d.CheckClaims(ctx)
	if err != nil {
		return err
	}

	q := d.NewUpdate().Table(table).Where("deleted_at IS NULL AND id = ?", id)
	q.Set("deleted_at = ?", time.Now())
	q.Set("deleted_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrapf(err, "deleting from %s", table), http.StatusInternalServerError)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return web.NewRequestError(errors.New("record not found"), http.StatusNotFound)
	}

	return nil
}

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation. The existence-check-then-insert paths depend on this to turn a
// lost race into a conflict response instead of a 500.
func IsUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Field('C') == uniqueViolation
}
