package main

import (
	"bytes"
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"testing"

	"madaris/core"
	"madaris/core/account"
	"madaris/core/school"
	"madaris/tests"
)

var accSvc *account.Service

func setup(t *testing.T) *commandLine {
	store := testutil.NewStore(t)
	conf := testutil.NewConfig()
	schoolSvc := school.NewService(store, conf, core.NewNopLogger())
	accSvc = account.NewService(store, schoolSvc, core.NewNopLogger())
	schoolSvc.BindAccounts(accSvc)

	return &commandLine{
		db:     new(sql.DB),
		accSvc: accSvc,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "fees", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_migrate_noDB(t *testing.T) {
	cli := setup(t)
	cli.db = nil

	if err := cli.run([]string{"admin", "migrate", "up"}); err != errNoDB {
		t.Errorf("cli.run() error = %v, wantErr %v", err, errNoDB)
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	acc := testutil.CreateAccount(t, accSvc, "Awe Some", "awe", "awe@test.om", "mdr", account.RoleAdmin, "")

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "account not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: account.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", acc.Username}, extra: extra{pwd: "lol"}},
		{name: "reset with email", args: []string{"resetpassword", "-username", acc.Email}, extra: extra{pwd: "lmao"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshed, err := accSvc.Get(acc.ID)
				if err != nil {
					t.Fatalf("Get() failed, %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, acc.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addAccount(t *testing.T) {
	cli := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }

	if err := cli.run([]string{"admin", "addaccount", "-name", "Awe Some", "-username", "Awe", "-email", "awe@test.om", "-admin"}); err != nil {
		t.Fatalf("cli.run() failed, %v", err)
	}

	acc, err := accSvc.GetByUsernameOrEmail("awe")
	if err != nil {
		t.Fatalf("GetByUsernameOrEmail() failed, %v", err)
	}
	if acc == nil {
		t.Fatal("account not created")
	}
	if acc.Role != account.RoleAdmin {
		t.Errorf("Role = %s, want %s", acc.Role, account.RoleAdmin)
	}
	if err := acc.CheckPassword("s3cret"); err != nil {
		t.Errorf("CheckPassword() failed, %v", err)
	}

	// running again updates in place
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("n3w-s3cret"), nil }
	if err := cli.run([]string{"admin", "addaccount", "-name", "Awe Some", "-username", "awe", "-admin"}); err != nil {
		t.Fatalf("cli.run() failed, %v", err)
	}
	updated, err := accSvc.GetByUsernameOrEmail("awe")
	if err != nil {
		t.Fatalf("GetByUsernameOrEmail() failed, %v", err)
	}
	if updated.ID != acc.ID {
		t.Errorf("expected update in place, got new account %s", updated.ID)
	}
	if err := updated.CheckPassword("n3w-s3cret"); err != nil {
		t.Errorf("CheckPassword() failed, %v", err)
	}
}
