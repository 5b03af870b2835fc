package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ORM is the chainable subset of gorm the repositories use. Error reports
// ErrRecordNotFound and ErrDuplicatedKey instead of the gorm sentinels.
type ORM interface {
	AutoMigrate(dst ...any) error
	Count(count *int64) ORM
	Create(value any) ORM
	Delete(value any, conds ...any) ORM
	Find(dest any, conds ...any) ORM
	First(dest any, conds ...any) ORM
	Limit(limit int) ORM
	Model(value any) ORM
	Offset(offset int) ORM
	Order(value any) ORM
	Pluck(column string, dest any) ORM
	Save(value any) ORM
	Transaction(fc func(tx ORM) error, opts ...*sql.TxOptions) error
	Where(query any, args ...any) ORM
	WithContext(ctx context.Context) ORM

	Error() error
}

type DB struct {
	*gorm.DB
	autoMigrationEnabled bool
}

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicatedKey  = errors.New("duplicated key")
)

var _ ORM = (*DB)(nil)

func (d DB) Error() error {
	switch {
	case errors.Is(d.DB.Error, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(d.DB.Error, gorm.ErrDuplicatedKey):
		return ErrDuplicatedKey
	case d.DB.Error != nil:
		return fmt.Errorf("database error: %w", d.DB.Error)
	default:
		return nil
	}
}

func (d DB) AutoMigrate(dst ...any) error {
	if d.autoMigrationEnabled {
		return d.DB.AutoMigrate(dst...)
	}
	return nil
}

func (d DB) wrap(tx *gorm.DB) ORM {
	d.DB = tx
	return &d
}

func (d DB) Count(value *int64) ORM {
	return d.wrap(d.DB.Count(value))
}

func (d DB) Create(value any) ORM {
	return d.wrap(d.DB.Create(value))
}

func (d DB) Delete(value any, conds ...any) ORM {
	return d.wrap(d.DB.Delete(value, conds...))
}

func (d DB) Find(value any, conds ...any) ORM {
	return d.wrap(d.DB.Find(value, conds...))
}

func (d DB) First(value any, conds ...any) ORM {
	return d.wrap(d.DB.First(value, conds...))
}

func (d DB) Limit(value int) ORM {
	return d.wrap(d.DB.Limit(value))
}

func (d DB) Model(value any) ORM {
	return d.wrap(d.DB.Model(value))
}

func (d DB) Offset(value int) ORM {
	return d.wrap(d.DB.Offset(value))
}

func (d DB) Order(value any) ORM {
	return d.wrap(d.DB.Order(value))
}

func (d DB) Pluck(column string, dest any) ORM {
	return d.wrap(d.DB.Pluck(column, dest))
}

func (d DB) Save(value any) ORM {
	return d.wrap(d.DB.Save(value))
}

func (d DB) Where(value any, conds ...any) ORM {
	return d.wrap(d.DB.Where(value, conds...))
}

func (d DB) WithContext(ctx context.Context) ORM {
	return d.wrap(d.DB.WithContext(ctx))
}

func (d DB) Transaction(f func(ORM) error, opts ...*sql.TxOptions) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		return f(&DB{DB: tx, autoMigrationEnabled: d.autoMigrationEnabled})
	}, opts...)
}
