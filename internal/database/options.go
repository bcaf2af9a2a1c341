package database

import (
	"fmt"

	"github.com/helixml/markerrange/domain/repository"
	"gorm.io/gorm"
)

// ApplyOptions builds a repository.Query from the given options and applies it to a GORM session.
func ApplyOptions(db *gorm.DB, options ...repository.Option) *gorm.DB {
	q := repository.Build(options...)

	db = applyConditions(db, q)

	for _, ord := range q.Orders() {
		db = db.Order(fmt.Sprintf("%s %s", ord.Field(), ord.Direction()))
	}

	if q.Limit() > 0 {
		db = db.Limit(q.Limit())
	}

	if q.Offset() > 0 {
		db = db.Offset(q.Offset())
	}

	return db
}

// ApplyConditions applies only WHERE conditions (no limit/offset/order) for COUNT queries.
func ApplyConditions(db *gorm.DB, options ...repository.Option) *gorm.DB {
	return applyConditions(db, repository.Build(options...))
}

func applyConditions(db *gorm.DB, q repository.Query) *gorm.DB {
	for _, cond := range q.Conditions() {
		db = db.Where(fmt.Sprintf("%s = ?", cond.Field()), cond.Value())
	}
	return db
}
