package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/godyclif/vet/internal/domain/users"
	"github.com/godyclif/vet/internal/router"
	"github.com/godyclif/vet/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace animals, treatments, vaccines and reports with sample data",
	Long: `Wipes animals, treatments, vaccines and medical reports, then inserts four
sample animals with random treatments and vaccines. Users and contact
messages are left untouched.`,
	RunE: runSeed,
}

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account or promote an existing one",
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "Admin User", "Display name for a new admin")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "admin@universalis.com", "Admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password for a new admin (required unless the account exists)")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	_, log, repos, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	defer func() { _ = repos.Close(context.Background()) }()

	svcs := router.NewServices(repos, nil, nil, log, nil)
	res, err := (&seed.Seeder{
		Animals:    svcs.Animals,
		Treatments: svcs.Treatments,
		Vaccines:   svcs.Vaccines,
		MedReports: svcs.MedReports,
		Log:        log,
	}).Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seeded %d animals (%d treatments, %d vaccines)\n", res.Animals, res.Treatments, res.Vaccines)
	fmt.Fprintf(out, "Certificates: %s\n", strings.Join(res.Certificates, ", "))
	return nil
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	_, log, repos, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	defer func() { _ = repos.Close(context.Background()) }()

	svc := users.NewService(repos.Users, nil, nil)
	u, created, err := svc.EnsureAdmin(ctx, users.SignupInput{
		Name:     adminName,
		Email:    adminEmail,
		Password: adminPassword,
	})
	if err != nil {
		if errors.Is(err, users.ErrInvalidInput) {
			return fmt.Errorf("create-admin: name (2+ chars), email and --password (8-72 chars) are required for a new account")
		}
		return err
	}

	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Admin user created: %s\n", u.Email)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "User upgraded to admin: %s\n", u.Email)
	}
	return nil
}
