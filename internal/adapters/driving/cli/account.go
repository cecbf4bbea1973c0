package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

var accountFlags struct {
	name   string
	email  string
	mobile string
	otp    string
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Start a sign-up. An OTP is sent to your email; complete the sign-up
with 'karigar verify'.

Missing details are prompted for. The 4-digit PIN is always prompted.

Examples:
  karigar register --name "Asha Patil" --email asha@example.com --mobile 9876543210`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Complete a sign-up with the emailed OTP",
	Long: `Verify the OTP sent by 'karigar register'. On success you are logged in.

Examples:
  karigar verify --email asha@example.com --otp 482913`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

var resendOTPCmd = &cobra.Command{
	Use:   "resend-otp",
	Short: "Send a new sign-up OTP",
	Args:  cobra.NoArgs,
	RunE:  runResendOTP,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and PIN",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in account",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, verifyCmd} {
		c.Flags().StringVar(&accountFlags.name, "name", "", "full name")
		c.Flags().StringVar(&accountFlags.mobile, "mobile", "", "10-digit mobile number")
	}
	for _, c := range []*cobra.Command{registerCmd, verifyCmd, resendOTPCmd, loginCmd} {
		c.Flags().StringVar(&accountFlags.email, "email", "", "email address")
	}
	verifyCmd.Flags().StringVar(&accountFlags.otp, "otp", "", "one-time password from the email")

	rootCmd.AddCommand(registerCmd, verifyCmd, resendOTPCmd, loginCmd, logoutCmd, whoamiCmd)
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	p := newPrompter(cmd)
	reg := domain.Registration{
		Name:     askIfEmpty(p, accountFlags.name, "Name: "),
		Email:    askIfEmpty(p, accountFlags.email, "Email: "),
		MobileNo: askIfEmpty(p, accountFlags.mobile, "Mobile number: "),
	}
	reg.Pin = p.Secret("PIN: ")
	reg.ConfirmPin = p.Secret("Confirm PIN: ")

	msg, err := authService.Register(commandContext(cmd), reg)
	if err != nil {
		printFieldErrors(cmd, err)
		return explain("registration failed", err)
	}

	if msg == "" {
		msg = "OTP sent"
	}
	cmd.Println(msg)
	cmd.Printf("Complete sign-up with: karigar verify --email %s --otp <code>\n", reg.Email)
	return nil
}

func runVerify(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	p := newPrompter(cmd)
	v := domain.OTPVerification{
		Name:     accountFlags.name,
		Email:    askIfEmpty(p, accountFlags.email, "Email: "),
		MobileNo: accountFlags.mobile,
		OTP:      askIfEmpty(p, accountFlags.otp, "OTP: "),
	}
	v.Pin = p.Secret("PIN: ")

	session, err := authService.VerifyOTP(commandContext(cmd), v)
	if err != nil {
		printFieldErrors(cmd, err)
		return explain("verification failed", err)
	}

	cmd.Printf("Welcome! Logged in as %s\n", session.UserID)
	return nil
}

func runResendOTP(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	email := askIfEmpty(newPrompter(cmd), accountFlags.email, "Email: ")
	if err := authService.ResendOTP(commandContext(cmd), email); err != nil {
		return explain("resend failed", err)
	}
	cmd.Printf("A new OTP was sent to %s\n", email)
	return nil
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	p := newPrompter(cmd)
	email := askIfEmpty(p, accountFlags.email, "Email: ")
	pin := p.Secret("PIN: ")

	session, err := authService.Login(commandContext(cmd), email, pin)
	if err != nil {
		printFieldErrors(cmd, err)
		return explain("login failed", err)
	}

	role := "customer"
	if session.IsProfession {
		role = "professional"
	}
	cmd.Printf("Logged in (%s)\n", role)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}
	if err := authService.Logout(commandContext(cmd)); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	cmd.Println("Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if authService == nil || profileService == nil {
		return errors.New("auth service not configured")
	}

	ctx := commandContext(cmd)
	if _, err := authService.Current(ctx); err != nil {
		return explain("whoami", err)
	}

	user, err := profileService.Get(ctx)
	if err != nil {
		return explain("failed to load profile", err)
	}

	cmd.Printf("%s <%s>\n", user.Name, user.Email)
	cmd.Printf("  Mobile: %s\n", user.MobileNo)
	if user.IsProfession && user.Profession != nil {
		cmd.Printf("  Professional: %s (%s)\n", user.Profession.DisplayService(), user.Profession.ServiceCategory)
	}
	return nil
}

// askIfEmpty returns value, prompting for it when empty.
func askIfEmpty(p *prompter, value, label string) string {
	if value != "" {
		return value
	}
	return p.Line(label)
}
