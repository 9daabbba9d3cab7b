package services

import (
	"context"
	"encoding/json"
	"testing"

	"profitflow/internal/config"
	"profitflow/internal/models"
	"profitflow/internal/pagination"
	"profitflow/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)
	admin := testutil.CreateTestAdmin(t, db)

	svc.Log(admin.ID, "CREATE_PLAN", "plan", "pro", "10.0.0.1", map[string]interface{}{"name": "Pro"})
	svc.Log("", "DISTRIBUTE_PROFITS", "profit_log", "2024-01-07", "", nil)

	t.Run("admin entry", func(t *testing.T) {
		var entry models.AuditLog
		testutil.AssertNoError(t, db.Where("action = ?", "CREATE_PLAN").First(&entry).Error)
		if entry.UserID == nil || *entry.UserID != admin.ID {
			t.Errorf("expected user %s, got %v", admin.ID, entry.UserID)
		}
		if entry.Source != models.AuditSourceAPI {
			t.Errorf("expected api source, got %s", entry.Source)
		}
		var changes map[string]string
		testutil.AssertNoError(t, json.Unmarshal(entry.Changes, &changes))
		if changes["name"] != "Pro" {
			t.Errorf("unexpected changes %s", entry.Changes)
		}
	})

	t.Run("pipeline entry", func(t *testing.T) {
		var entry models.AuditLog
		testutil.AssertNoError(t, db.Where("action = ?", "DISTRIBUTE_PROFITS").First(&entry).Error)
		if entry.UserID != nil {
			t.Errorf("expected no user, got %s", *entry.UserID)
		}
		if entry.Source != models.AuditSourcePipeline {
			t.Errorf("expected pipeline source, got %s", entry.Source)
		}
		if len(entry.Changes) != 0 {
			t.Errorf("expected empty changes, got %s", entry.Changes)
		}
	})
}

func TestAuditList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)
	admin := testutil.CreateTestAdmin(t, db)

	svc.Log(admin.ID, "ACTIVATE_INVESTMENT", "investment", "inv-1", "", nil)
	svc.Log(admin.ID, "MATURE_INVESTMENT", "investment", "inv-1", "", nil)
	svc.Log(admin.ID, "ACTIVATE_INVESTMENT", "investment", "inv-2", "", nil)
	svc.Log("", "DISTRIBUTE_PROFITS", "profit_log", "2024-01-07", "", nil)

	page := pagination.PageRequest{Page: 1, PageSize: 20}
	tests := []struct {
		name   string
		filter AuditFilter
		want   int64
	}{
		{"all", AuditFilter{}, 4},
		{"by action", AuditFilter{Action: "ACTIVATE_INVESTMENT"}, 2},
		{"by resource", AuditFilter{ResourceType: "investment", ResourceID: "inv-1"}, 2},
		{"no match", AuditFilter{Action: "WITHDRAW"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.List(tt.filter, page)
			testutil.AssertNoError(t, err)
			if resp.TotalItems != tt.want {
				t.Errorf("expected %d entries, got %d", tt.want, resp.TotalItems)
			}
		})
	}
}

func TestDistributionRunsAreAudited(t *testing.T) {
	f := newDistributionFixture(t, config.PlanPolicyFallback)
	user := testutil.CreateTestUser(t, f.db)
	admin := testutil.CreateTestAdmin(t, f.db)
	testutil.CreateTestPlan(t, f.db, "pro", "3")
	testutil.CreateTestInvestment(t, f.db, user.ID, "pro", "1000", models.InvestmentActive)

	_, err := f.svc.Run(context.Background(), DistributionRequest{Mode: ModeBaseline, WeekEnding: testWeek, RunBy: admin.ID})
	testutil.AssertNoError(t, err)
	_, err = f.svc.Run(context.Background(), DistributionRequest{Mode: ModeBaseline, WeekEnding: testWeek.AddDate(0, 0, 7)})
	testutil.AssertNoError(t, err)

	if n := testutil.CountRows(t, f.db, &models.AuditLog{}, "action = ? AND source = ?", "DISTRIBUTE_PROFITS", models.AuditSourceAPI); n != 1 {
		t.Errorf("expected 1 admin run entry, got %d", n)
	}
	if n := testutil.CountRows(t, f.db, &models.AuditLog{}, "action = ? AND source = ?", "DISTRIBUTE_PROFITS", models.AuditSourcePipeline); n != 1 {
		t.Errorf("expected 1 pipeline run entry, got %d", n)
	}

	// dry runs leave no trace
	_, err = f.svc.Run(context.Background(), DistributionRequest{Mode: ModeBaseline, WeekEnding: testWeek.AddDate(0, 0, 14), DryRun: true})
	testutil.AssertNoError(t, err)
	if n := testutil.CountRows(t, f.db, &models.AuditLog{}, ""); n != 2 {
		t.Errorf("expected 2 audit entries, got %d", n)
	}
}
