package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

var profileFlags struct {
	name   string
	email  string
	mobile string
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and update your account profile",
	RunE:  runProfileShow,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change name, email or mobile number",
	Long: `Change basic account details. Only the flags given are updated.

Examples:
  karigar profile update --mobile 9123456780`,
	Args: cobra.NoArgs,
	RunE: runProfileUpdate,
}

var profileAvatarCmd = &cobra.Command{
	Use:   "avatar <image>",
	Short: "Upload a new profile photo",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileAvatar,
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileFlags.name, "name", "", "new full name")
	profileUpdateCmd.Flags().StringVar(&profileFlags.email, "email", "", "new email address")
	profileUpdateCmd.Flags().StringVar(&profileFlags.mobile, "mobile", "", "new 10-digit mobile number")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd, profileAvatarCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	ctx := commandContext(cmd)
	user, err := profileService.Get(ctx)
	if err != nil {
		return explain("failed to load profile", err)
	}

	cmd.Println("Profile")
	cmd.Println("=======")
	cmd.Printf("  Name:   %s\n", user.Name)
	cmd.Printf("  Email:  %s\n", user.Email)
	cmd.Printf("  Mobile: %s\n", user.MobileNo)
	if url, err := profileService.AvatarURL(ctx); err == nil {
		cmd.Printf("  Photo:  %s\n", url)
	}

	if user.IsProfession && user.Profession != nil {
		cmd.Println()
		printProfessional(cmd, *user.Profession)
	}
	return nil
}

func runProfileUpdate(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	update := domain.BasicProfileUpdate{
		Name:     profileFlags.name,
		Email:    profileFlags.email,
		MobileNo: profileFlags.mobile,
	}
	if err := profileService.UpdateBasic(commandContext(cmd), update); err != nil {
		printFieldErrors(cmd, err)
		return explain("update failed", err)
	}
	cmd.Println("Profile updated")
	return nil
}

func runProfileAvatar(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	if err := profileService.UploadAvatar(commandContext(cmd), filepath.Base(path), f); err != nil {
		return explain("upload failed", err)
	}
	cmd.Println("Profile photo updated")
	return nil
}

func printProfessional(cmd *cobra.Command, r domain.ProfessionalRecord) {
	cmd.Printf("  %s\n", r.Name)
	cmd.Printf("    Service:    %s (%s)\n", r.DisplayService(), r.ServiceCategory)
	cmd.Printf("    Location:   %s\n", joinNonEmpty(r.City, r.District, r.State))
	if r.Experience != "" {
		cmd.Printf("    Experience: %s\n", r.Experience)
	}
	cmd.Printf("    Contact:    %s", r.MobileNo)
	if r.AlternateMobileNo != "" {
		cmd.Printf(" / %s", r.AlternateMobileNo)
	}
	cmd.Println()
	if r.About != "" {
		cmd.Printf("    About:      %s\n", r.About)
	}
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
