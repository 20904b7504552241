package account

import (
	"bytes"
	"testing"

	"madaris/core"
	"madaris/core/school"
	"madaris/storage/kv/inmem"
)

type stubSchools struct {
	schools map[string]*school.School
}

func (d stubSchools) GetSchool(id string) (*school.School, error) {
	return d.schools[id], nil
}

func setup(t *testing.T) *Service {
	t.Helper()
	store := core.NewStore(inmemkv.NewBackend(), core.NewNopLogger())
	dir := stubSchools{schools: map[string]*school.School{
		"school-1": {Name: "مدرسة النهضة", Logo: "logo.png"},
	}}
	return NewService(store, dir, core.NewNopLogger())
}

func createAccount(t *testing.T, svc *Service, name, uname, email, pwd, role, schoolID string) Account {
	t.Helper()
	acc := Account{
		Name:     name,
		Username: uname,
		Email:    email,
		Role:     role,
		SchoolID: schoolID,
	}
	if pwd != "" {
		if err := acc.SetPassword(pwd); err != nil {
			t.Fatalf("SetPassword() failed, %v", err)
		}
	}
	if err := svc.Save(&acc); err != nil {
		t.Fatalf("Save() failed, %v", err)
	}
	return acc
}

func TestService_Save_denormalizesSchool(t *testing.T) {
	svc := setup(t)

	acc := createAccount(t, svc, "Awe Some", "awe", "awe@test.om", "mdr", RoleSchoolAdmin, "school-1")
	if acc.SchoolName != "مدرسة النهضة" {
		t.Errorf("SchoolName = %s, want مدرسة النهضة", acc.SchoolName)
	}
	if acc.SchoolLogo != "logo.png" {
		t.Errorf("SchoolLogo = %s, want logo.png", acc.SchoolLogo)
	}
}

func TestService_Save_keepsPasswordHash(t *testing.T) {
	svc := setup(t)

	acc := createAccount(t, svc, "Awe Some", "awe", "awe@test.om", "mdr", RoleAdmin, "")
	hash := acc.PasswordHash

	// an update without a password keeps the stored hash
	acc.PasswordHash = nil
	acc.Name = "Awe Somebody"
	if err := svc.Save(&acc); err != nil {
		t.Fatalf("Save() failed, %v", err)
	}
	if !bytes.Equal(acc.PasswordHash, hash) {
		t.Error("expected the stored hash to be kept")
	}

	got, err := svc.Get(acc.ID)
	if err != nil || got == nil {
		t.Fatalf("Get() failed, got %v, %v", got, err)
	}
	if err := got.CheckPassword("mdr"); err != nil {
		t.Errorf("CheckPassword() failed, %v", err)
	}
}

func TestService_Save_notFound(t *testing.T) {
	svc := setup(t)

	acc := Account{Name: "Ghost", Username: "ghost", Role: RoleAdmin}
	acc.ID = "nope"
	if err := svc.Save(&acc); err != ErrNotFound {
		t.Errorf("Save() error = %v, wantErr %v", err, ErrNotFound)
	}
}

func TestService_Authenticate(t *testing.T) {
	svc := setup(t)

	acc := createAccount(t, svc, "Awe Some", "awe", "awe@test.om", "mdr", RoleAdmin, "")

	tests := []struct {
		name    string
		uname   string
		pwd     string
		wantErr error
	}{
		{name: "by username", uname: "awe", pwd: "mdr"},
		{name: "by email", uname: "awe@test.om", pwd: "mdr"},
		{name: "case insensitive lookup", uname: "AWE", pwd: "mdr"},
		{name: "wrong password", uname: "awe", pwd: "lol", wantErr: ErrInvalidCredentials},
		{name: "unknown account", uname: "lol", pwd: "mdr", wantErr: ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Authenticate(tt.uname, tt.pwd)
			if err != tt.wantErr {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if got.ID != acc.ID {
				t.Errorf("Authenticate() = %s, want %s", got.ID, acc.ID)
			}
			if !got.LastLogin.Valid {
				t.Error("expected LastLogin to be stamped")
			}
		})
	}
}

func TestService_SyncSchoolInfo(t *testing.T) {
	svc := setup(t)

	a := createAccount(t, svc, "One", "one1", "one@test.om", "mdr", RoleSchoolAdmin, "school-1")
	b := createAccount(t, svc, "Two", "two2", "two@test.om", "mdr", RoleGradeManager, "school-1")
	other := createAccount(t, svc, "Three", "three3", "three@test.om", "mdr", RoleAdmin, "")

	if err := svc.SyncSchoolInfo("school-1", "اسم جديد", "new.png"); err != nil {
		t.Fatalf("SyncSchoolInfo() failed, %v", err)
	}

	for _, id := range []string{a.ID, b.ID} {
		got, err := svc.Get(id)
		if err != nil || got == nil {
			t.Fatalf("Get() failed, got %v, %v", got, err)
		}
		if got.SchoolName != "اسم جديد" || got.SchoolLogo != "new.png" {
			t.Errorf("account %s = %s/%s, want اسم جديد/new.png", id, got.SchoolName, got.SchoolLogo)
		}
	}

	got, err := svc.Get(other.ID)
	if err != nil || got == nil {
		t.Fatalf("Get() failed, got %v, %v", got, err)
	}
	if got.SchoolName != "" {
		t.Errorf("unrelated account SchoolName = %s, want empty", got.SchoolName)
	}
}

func TestAccount_ManagesGrade(t *testing.T) {
	admin := Account{Role: RoleAdmin}
	if !admin.ManagesGrade("الصف الأول") {
		t.Error("admin must be unrestricted")
	}

	mgr := Account{Role: RoleGradeManager, GradeLevels: []string{"الصف الأول", "الصف الثاني"}}
	if !mgr.ManagesGrade("الصف الأول") {
		t.Error("expected grade to be managed")
	}
	if mgr.ManagesGrade("الصف الثالث") {
		t.Error("expected grade to be restricted")
	}
}
