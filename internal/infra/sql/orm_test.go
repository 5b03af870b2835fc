package sql_test

import (
	"context"

	"upkeep-server/internal/infra/sql"

	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type widget struct {
	ID   string `gorm:"primaryKey"`
	Kind string
}

var _ = ginkgo.Describe("ORM", func() {
	var (
		orm sql.ORM
		ctx context.Context
	)

	ginkgo.BeforeEach(func() {
		db, err := sql.NewMemoryORM("orm_" + uuid.NewString())
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		orm = db
		ctx = context.Background()
		gomega.Expect(orm.AutoMigrate(&widget{})).To(gomega.Succeed())
	})

	ginkgo.It("maps a missing row to ErrRecordNotFound", func() {
		var w widget
		err := orm.WithContext(ctx).Where("id = ?", "missing").First(&w).Error()
		gomega.Expect(err).To(gomega.MatchError(sql.ErrRecordNotFound))
	})

	ginkgo.It("chains filters and pagination", func() {
		for _, w := range []widget{{"a", "pump"}, {"b", "pump"}, {"c", "valve"}} {
			gomega.Expect(orm.WithContext(ctx).Create(&w).Error()).To(gomega.Succeed())
		}

		var count int64
		gomega.Expect(orm.WithContext(ctx).Model(&widget{}).Where("kind = ?", "pump").Count(&count).Error()).To(gomega.Succeed())
		gomega.Expect(count).To(gomega.Equal(int64(2)))

		var page []widget
		gomega.Expect(orm.WithContext(ctx).Order("id").Offset(1).Limit(1).Find(&page).Error()).To(gomega.Succeed())
		gomega.Expect(page).To(gomega.Equal([]widget{{"b", "pump"}}))

		var ids []string
		gomega.Expect(orm.WithContext(ctx).Model(&widget{}).Pluck("id", &ids).Error()).To(gomega.Succeed())
		gomega.Expect(ids).To(gomega.ConsistOf("a", "b", "c"))
	})

	ginkgo.It("maps a primary key collision to ErrDuplicatedKey", func() {
		gomega.Expect(orm.WithContext(ctx).Create(&widget{ID: "d", Kind: "pump"}).Error()).To(gomega.Succeed())

		err := orm.WithContext(ctx).Create(&widget{ID: "d", Kind: "valve"}).Error()
		gomega.Expect(err).To(gomega.MatchError(sql.ErrDuplicatedKey))
	})

	ginkgo.It("rolls back a failed transaction", func() {
		err := orm.Transaction(func(tx sql.ORM) error {
			if err := tx.Create(&widget{ID: "t", Kind: "pump"}).Error(); err != nil {
				return err
			}
			return tx.Create(&widget{ID: "t", Kind: "dup"}).Error()
		})
		gomega.Expect(err).To(gomega.HaveOccurred())

		var count int64
		gomega.Expect(orm.Model(&widget{}).Count(&count).Error()).To(gomega.Succeed())
		gomega.Expect(count).To(gomega.BeZero())
	})
})
