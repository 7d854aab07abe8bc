// commands.go
//
// Operator CLI for notesdb stores
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of notesdb.
// notesdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// notesdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with notesdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/localnerve/notesdb/data"
	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/notes"
	"github.com/localnerve/notesdb/internal/services"
	"github.com/localnerve/notesdb/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// roleCmd sets a user's role
var roleCmd = &cobra.Command{
	Use:   "role <uid> <student|admin>",
	Short: "Set a user's role",
	Long: `Set the role of an existing user profile. Admins can approve notes,
delete any note and add videos directly.

Examples:
  notesctl role 4f1c0b student
  notesctl -f .env role 4f1c0b admin`,
	Args: cobra.ExactArgs(2),
	RunE: runRole,
}

// approveCmd approves a pending note
var approveCmd = &cobra.Command{
	Use:   "approve <noteId>",
	Short: "Approve a pending note",
	Args:  cobra.ExactArgs(1),
	RunE:  runApprove,
}

// departmentsCmd groups the department directory commands
var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "Manage the department directory",
}

var departmentsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the built-in departments when the directory is empty",
	Args:  cobra.NoArgs,
	RunE:  runDepartmentsSeed,
}

var departmentsAddCmd = &cobra.Command{
	Use:   "add <name> <shortName>",
	Short: "Add or update a department",
	Long: `Add or update a department. The id defaults to a slug of the short name.

Examples:
  notesctl departments add "Mechanical Engineering" ME
  notesctl departments add "ব্যবসায় প্রশাসন" BBA --order 5`,
	Args: cobra.ExactArgs(2),
	RunE: runDepartmentsAdd,
}

var departmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List departments",
	Args:  cobra.NoArgs,
	RunE:  runDepartmentsList,
}

// statsCmd prints moderation counts
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print total, approved and pending note counts",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var (
	departmentID    string
	departmentOrder int
)

func init() {
	departmentsAddCmd.Flags().StringVar(&departmentID, "id", "", "department id (default: slug of the short name)")
	departmentsAddCmd.Flags().IntVar(&departmentOrder, "order", 0, "sort order in the directory")
	departmentsCmd.AddCommand(departmentsSeedCmd)
	departmentsCmd.AddCommand(departmentsAddCmd)
	departmentsCmd.AddCommand(departmentsListCmd)
}

func runRole(cmd *cobra.Command, args []string) error {
	uid, role := args[0], models.Role(args[1])
	if !role.Valid() {
		return fmt.Errorf("unknown role %q, expected student or admin", args[1])
	}
	return withStore(cmd, func(ctx context.Context, st store.Store, log *zap.Logger) error {
		if err := st.SetRole(ctx, uid, role); err != nil {
			return fmt.Errorf("failed to set role for %s: %w", uid, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", uid, role)
		return nil
	})
}

func runApprove(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st store.Store, log *zap.Logger) error {
		if err := st.ApproveNote(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to approve %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "approved %s\n", args[0])
		return nil
	})
}

func runDepartmentsSeed(cmd *cobra.Command, args []string) error {
	depts, err := data.LoadDepartments()
	if err != nil {
		return err
	}
	return withStore(cmd, func(ctx context.Context, st store.Store, log *zap.Logger) error {
		n, err := services.SeedDepartments(ctx, st, depts, log)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "departments already present, nothing seeded")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d departments\n", n)
		return nil
	})
}

func runDepartmentsAdd(cmd *cobra.Command, args []string) error {
	name, short := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
	id := departmentID
	if id == "" {
		id = slug.Make(short)
	}
	if id == "" || name == "" {
		return fmt.Errorf("department name and id must not be empty")
	}
	dept := models.Department{ID: id, Name: name, ShortName: short, SortOrder: departmentOrder}
	return withStore(cmd, func(ctx context.Context, st store.Store, log *zap.Logger) error {
		if err := st.UpsertDepartment(ctx, dept); err != nil {
			return fmt.Errorf("failed to save department: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved department %s (%s)\n", dept.ID, dept.ShortName)
		return nil
	})
}

func runDepartmentsList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st store.Store, log *zap.Logger) error {
		depts, err := st.ListDepartments(ctx)
		if err != nil {
			return err
		}
		for _, d := range depts {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-6s %s\n", d.ID, d.ShortName, d.Name)
		}
		return nil
	})
}

func runStats(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st store.Store, log *zap.Logger) error {
		all, err := st.QueryNotes(ctx, store.NoteFilter{})
		if err != nil {
			return err
		}
		s := notes.ComputeStats(all)
		fmt.Fprintf(cmd.OutOrStdout(), "total: %d\napproved: %d\npending: %d\n", s.Total, s.Approved, s.Pending)
		return nil
	})
}
