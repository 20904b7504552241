package main

import (
	"madaris/core/account"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	acc, err := cli.accSvc.GetByUsernameOrEmail(uname)
	if err != nil {
		return err
	}
	if acc == nil {
		return account.ErrNotFound
	}
	if err := acc.SetPassword(pwd); err != nil {
		return err
	}
	return cli.accSvc.Save(acc)
}
