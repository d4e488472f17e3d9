package access

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/storage/jsonfile"
)

func setupTestStore(t *testing.T) *cli.Context {
	t.Helper()
	store := jsonfile.NewStore(filepath.Join(t.TempDir(), "vitalit.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return cli.NewContext(store, catalog.MustDefault(), time.UTC, nil)
}

func TestActivateCmd(t *testing.T) {
	tests := []struct {
		name     string
		planID   int
		password string
		wantErr  bool
	}{
		{name: "kickstart", planID: 1, password: "kick2024"},
		{name: "password is trimmed", planID: 2, password: " momentum2024 "},
		{name: "wrong password", planID: 1, password: "total2024", wantErr: true},
		{name: "unknown plan", planID: 9, password: "kick2024", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestStore(t)
			err := (&ActivateCmd{PlanID: tt.planID, Password: tt.password}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			st := ctx.Entitlement.Status()
			if st.Active != !tt.wantErr {
				t.Errorf("status active = %v after activation error %v", st.Active, err)
			}
		})
	}
}

func TestDeactivateCmd(t *testing.T) {
	ctx := setupTestStore(t)
	if err := (&ActivateCmd{PlanID: 4, Password: "total2024"}).Run(ctx); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if st := ctx.Entitlement.Status(); !st.Unlimited {
		t.Errorf("plan 4 status = %+v, want unlimited", st)
	}

	if err := (&DeactivateCmd{}).Run(ctx); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if ctx.Entitlement.Status().Active {
		t.Error("plan still active after deactivate")
	}
	if err := (&StatusCmd{}).Run(ctx); err != nil {
		t.Errorf("status failed: %v", err)
	}
	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}
