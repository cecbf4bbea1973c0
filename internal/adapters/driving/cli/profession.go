package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
)

var professionFlags struct {
	name        string
	email       string
	mobile      string
	altMobile   string
	state       string
	district    string
	city        string
	category    string
	service     string
	designation string
	experience  string
	about       string
	agree       bool
	interactive bool
}

var professionCmd = &cobra.Command{
	Use:   "profession",
	Short: "Register or edit your professional profile",
	Long: `Publish the trade, location and experience shown to people looking
for a professional.

Locations and services accept either the label or the value shown by
'karigar services'. Choosing service "Others" requires --designation with
the name of your service.`,
}

var professionSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Register as a professional",
	Long: `Register as a professional. Name, email and mobile default to your
account details.

Examples:
  karigar profession submit --state Maharashtra --district Pune --city Baramati \
    --category "Household Services" --service Plumber --experience "5 years" --agree

  # Custom service
  karigar profession submit -i --service Others --designation "Tailor"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error { return runProfession(cmd, false) },
}

var professionEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your professional profile",
	Long: `Edit your professional profile. Only the flags given are changed.
Changing a state, district or category clears the fields below it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error { return runProfession(cmd, true) },
}

func init() {
	for _, c := range []*cobra.Command{professionSubmitCmd, professionEditCmd} {
		f := c.Flags()
		f.StringVar(&professionFlags.name, "name", "", "name shown on the profile")
		f.StringVar(&professionFlags.email, "email", "", "contact email")
		f.StringVar(&professionFlags.mobile, "mobile", "", "10-digit contact number")
		f.StringVar(&professionFlags.altMobile, "alt-mobile", "", "alternate 10-digit contact number")
		f.StringVar(&professionFlags.state, "state", "", "state")
		f.StringVar(&professionFlags.district, "district", "", "district")
		f.StringVar(&professionFlags.city, "city", "", "city")
		f.StringVar(&professionFlags.category, "category", "", "service category")
		f.StringVar(&professionFlags.service, "service", "", "service name, or Others for a custom service")
		f.StringVar(&professionFlags.designation, "designation", "", "specialisation, or the custom service name")
		f.StringVar(&professionFlags.experience, "experience", "", "experience, e.g. \"5 years\"")
		f.StringVar(&professionFlags.about, "about", "", "short description")
		f.BoolVarP(&professionFlags.interactive, "interactive", "i", false, "prompt for missing choices")
	}
	professionSubmitCmd.Flags().BoolVar(&professionFlags.agree, "agree", false, "accept the listing terms")

	professionCmd.AddCommand(professionSubmitCmd, professionEditCmd)
	rootCmd.AddCommand(professionCmd)
}

func runProfession(cmd *cobra.Command, edit bool) error {
	if professionService == nil {
		return errors.New("profession service not configured")
	}

	ctx := commandContext(cmd)
	session, err := professionService.Begin(ctx)
	if err != nil {
		return explain("failed to open profile", err)
	}
	switch {
	case edit && !session.Editing():
		return errors.New("you are not registered as a professional (use 'karigar profession submit')")
	case !edit && session.Editing():
		return errors.New("you are already registered as a professional (use 'karigar profession edit')")
	}

	if err := applyProfessionFlags(cmd, session); err != nil {
		return err
	}
	if professionFlags.interactive {
		promptMissing(newPrompter(cmd), session)
	}

	if err := professionService.Submit(ctx, session); err != nil {
		printFieldErrors(cmd, err)
		return explain("submission failed", err)
	}

	if edit {
		cmd.Println("Profile updated")
	} else {
		cmd.Println("You are now listed as a professional")
	}
	return nil
}

// applyProfessionFlags replays the changed flags through the selector in
// cascade order so ancestors are set before their dependents.
func applyProfessionFlags(cmd *cobra.Command, s driving.ProfessionFormSession) error {
	changed := cmd.Flags().Changed

	if changed("state") {
		v, err := matchOption("state", s.States(), professionFlags.state)
		if err != nil {
			return err
		}
		s.OnStateChange(v)
	}
	if changed("district") {
		v, err := matchOption("district", s.OptionsForDistrict(s.Form().State), professionFlags.district)
		if err != nil {
			return err
		}
		s.OnDistrictChange(v)
	}
	if changed("city") {
		v, err := matchOption("city", s.OptionsForCity(s.Form().District), professionFlags.city)
		if err != nil {
			return err
		}
		s.OnCityChange(v)
	}
	if changed("category") {
		v, err := matchOption("category", s.Categories(), professionFlags.category)
		if err != nil {
			return err
		}
		s.OnCategoryChange(v)
	}
	if changed("service") {
		v, err := matchOption("service", s.OptionsForServiceName(s.Form().ServiceCategory), professionFlags.service)
		if err != nil {
			return err
		}
		s.OnServiceNameChange(v)
	}

	text := map[string]*string{
		"name":        &professionFlags.name,
		"email":       &professionFlags.email,
		"mobile":      &professionFlags.mobile,
		"alt-mobile":  &professionFlags.altMobile,
		"designation": &professionFlags.designation,
		"experience":  &professionFlags.experience,
		"about":       &professionFlags.about,
	}
	fields := map[string]string{
		"name":        domain.FieldName,
		"email":       domain.FieldEmail,
		"mobile":      domain.FieldMobileNo,
		"alt-mobile":  domain.FieldAlternateMobileNo,
		"designation": domain.FieldDesignation,
		"experience":  domain.FieldExperience,
		"about":       domain.FieldAbout,
	}
	for flag, value := range text {
		if !changed(flag) {
			continue
		}
		if err := s.SetText(fields[flag], *value); err != nil {
			return err
		}
	}

	if !s.Editing() && professionFlags.agree {
		s.SetAgreed(true)
	}
	return nil
}

// promptMissing asks for every empty choice, top of the cascade first.
func promptMissing(p *prompter, s driving.ProfessionFormSession) {
	pick := func(label string, options []domain.Option) (string, bool) {
		if len(options) == 0 {
			return "", false
		}
		labels := make([]string, len(options))
		for i, o := range options {
			labels[i] = o.Label
		}
		p.cmd.PrintErrf("%s:\n", label)
		return options[p.Choose("Choose", labels, 0)].Value, true
	}

	if s.Form().State == "" {
		if v, ok := pick("State", s.States()); ok {
			s.OnStateChange(v)
		}
	}
	if s.Form().District == "" {
		if v, ok := pick("District", s.OptionsForDistrict(s.Form().State)); ok {
			s.OnDistrictChange(v)
		}
	}
	if s.Form().City == "" {
		if v, ok := pick("City", s.OptionsForCity(s.Form().District)); ok {
			s.OnCityChange(v)
		}
	}
	if s.Form().ServiceCategory == "" {
		if v, ok := pick("Service category", s.Categories()); ok {
			s.OnCategoryChange(v)
		}
	}
	if s.Form().ServiceName == "" {
		if v, ok := pick("Service", s.OptionsForServiceName(s.Form().ServiceCategory)); ok {
			s.OnServiceNameChange(v)
		}
	}

	form := s.Form()
	if form.ServiceName == domain.SentinelService && form.Designation == "" {
		_ = s.SetText(domain.FieldDesignation, p.Line("Name of your service: "))
	}
	if form.Experience == "" {
		_ = s.SetText(domain.FieldExperience, p.Line("Experience: "))
	}
	if !s.Editing() && !form.Agreed {
		answer := strings.ToLower(p.Line("List my profile publicly and accept the terms? [y/N]: "))
		s.SetAgreed(answer == "y" || answer == "yes")
	}
}

// matchOption resolves input against the label or value of each option,
// ignoring case.
func matchOption(what string, options []domain.Option, input string) (string, error) {
	input = strings.TrimSpace(input)
	for _, o := range options {
		if strings.EqualFold(o.Value, input) || strings.EqualFold(o.Label, input) {
			return o.Value, nil
		}
	}

	if len(options) == 0 {
		return "", fmt.Errorf("%w: no %s choices available; set the field above it first", domain.ErrInvalidInput, what)
	}
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}
	return "", fmt.Errorf("%w: unknown %s %q (choose from: %s)",
		domain.ErrInvalidInput, what, input, strings.Join(labels, ", "))
}
