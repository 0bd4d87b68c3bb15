package main

import (
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

// addUser creates a user.User with the given type.
func (cli *commandLine) addUser(name, email, pwd, typ string) error {
	now := time.Now().UTC()
	usr := user.User{
		Name:      core.CleanString(name),
		Email:     core.CleanString(email, true /* lower */),
		Type:      core.CleanString(typ, true /* lower */),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	if err := cli.usrRepo.CheckEmailUniqueness(usr.Email); err != nil {
		return err
	}
	_, err := cli.usrRepo.CreateUser(usr)
	return err
}

// resetPassword sets a new password on the user matching email.
func (cli *commandLine) resetPassword(email, pwd string) error {
	usr, err := cli.usrRepo.GetUserByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = cli.usrRepo.UpdateUser(usr)
	return err
}
