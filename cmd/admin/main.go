// Admin CLI for operational tasks against the portal database:
// bootstrapping the owner account, running the overdue sweep and
// managing room assignments without the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pgportal/backend/internal/assignment"
	"pgportal/backend/internal/auth"
	"pgportal/backend/internal/config"
	"pgportal/backend/internal/models"
	"pgportal/backend/internal/rent"
	"pgportal/backend/internal/storage"
)

func openStorage() (*storage.Service, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{TranslateError: true, DisableForeignKeyConstraintWhenMigrating: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// No redis needed for the admin CLI.
	return storage.NewStorageService(db, nil), nil
}

func main() {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "PG Portal administration commands",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	var ownerName, ownerEmail, ownerPassword string
	createOwner := &cobra.Command{
		Use:   "create-owner",
		Short: "Create the property owner account",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStorage()
			if err != nil {
				return err
			}
			hash, err := auth.HashPassword(ownerPassword)
			if err != nil {
				return err
			}
			owner := &models.User{
				Name:         ownerName,
				Email:        ownerEmail,
				PasswordHash: hash,
				Role:         models.RoleOwner,
			}
			if err := s.CreateUser(owner); err != nil {
				return err
			}
			fmt.Printf("Owner %s created (id %s).\n", owner.Email, owner.ID)
			return nil
		},
	}
	createOwner.Flags().StringVar(&ownerName, "name", "", "owner display name")
	createOwner.Flags().StringVar(&ownerEmail, "email", "", "owner login email")
	createOwner.Flags().StringVar(&ownerPassword, "password", "", "owner password")
	_ = createOwner.MarkFlagRequired("name")
	_ = createOwner.MarkFlagRequired("email")
	_ = createOwner.MarkFlagRequired("password")

	markOverdue := &cobra.Command{
		Use:   "mark-overdue",
		Short: "Flip all Pending rent records past their due date to Overdue",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStorage()
			if err != nil {
				return err
			}
			if err := rent.NewService(s).MarkOverdue(""); err != nil {
				return err
			}
			fmt.Println("Overdue sweep complete.")
			return nil
		},
	}

	assign := &cobra.Command{
		Use:   "assign <room-id> <tenant-id>",
		Short: "Assign a tenant to a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStorage()
			if err != nil {
				return err
			}
			svc := assignment.NewService(s, rent.NewService(s))
			room, err := svc.Assign(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Room %s assigned to tenant %s.\n", room.RoomNumber, args[1])
			return nil
		},
	}

	unassign := &cobra.Command{
		Use:   "unassign <room-id>",
		Short: "Vacate a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStorage()
			if err != nil {
				return err
			}
			svc := assignment.NewService(s, rent.NewService(s))
			room, err := svc.Unassign(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Room %s is now vacant.\n", room.RoomNumber)
			return nil
		},
	}

	root.AddCommand(createOwner, markOverdue, assign, unassign)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
