package repository_test

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/repository"
)

// newDryRunDB 仅构建 SQL 不执行，sql.Open 惰性连接所以无需真实数据库
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=academic dbname=academic_test sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("打开 DryRun 数据库失败: %v", err)
	}
	return db
}

// uq_assignment_key 是 WHERE deleted_at IS NULL 的部分唯一索引，
// 冲突目标缺少同谓词时 PostgreSQL 无法选定裁决索引（SQLSTATE 42P10）
func TestAssignmentRepo_UpsertConflictTargetCarriesPartialPredicate(t *testing.T) {
	db := newDryRunDB(t)

	var captured string
	err := db.Callback().Create().After("gorm:create").Register("capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	if err != nil {
		t.Fatalf("注册回调失败: %v", err)
	}

	repo := repository.NewAssignmentRepo(db)
	assignment := &model.CourseAssignment{
		TeacherID:           "t-001",
		CourseID:            "c-101",
		SemesterID:          "sem-001",
		Year:                2,
		Semester:            1,
		Sections:            model.StringArray{"A"},
		CreditHoursAssigned: 48,
	}
	if err := repo.Upsert(context.Background(), assignment); err != nil {
		t.Fatalf("Upsert 构建 SQL 失败: %v", err)
	}

	if captured == "" {
		t.Fatal("未捕获到生成的 SQL")
	}
	idx := strings.Index(captured, "ON CONFLICT")
	if idx < 0 {
		t.Fatalf("生成的 SQL 缺少 ON CONFLICT 子句: %s", captured)
	}
	target := captured[idx:]
	for _, col := range []string{`"teacher_id"`, `"course_id"`, `"year"`, `"semester"`, `"semester_id"`} {
		if !strings.Contains(target, col) {
			t.Errorf("冲突目标缺少列 %s: %s", col, target)
		}
	}
	if !strings.Contains(target, "WHERE deleted_at IS NULL") {
		t.Errorf("冲突目标缺少部分索引谓词 deleted_at IS NULL: %s", target)
	}
	doUpdate := strings.Index(target, "DO UPDATE")
	predicate := strings.Index(target, "WHERE deleted_at IS NULL")
	if doUpdate >= 0 && predicate > doUpdate {
		t.Errorf("谓词必须位于冲突目标内而非更新集之后: %s", target)
	}
}
