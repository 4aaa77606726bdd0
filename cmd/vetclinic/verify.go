package main

import (
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/godyclif/vet/internal/platform/httpclient"
)

var serverURL string

var verifyCmd = &cobra.Command{
	Use:   "verify <certificate>",
	Short: "Look up a certificate on a running server",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of the vetclinic API")
}

type verifyResult struct {
	Data struct {
		Animal struct {
			CertificateNumber string    `json:"certificateNumber"`
			Name              string    `json:"name"`
			Species           string    `json:"species"`
			Breed             string    `json:"breed"`
			Age               int       `json:"age"`
			OwnerName         string    `json:"ownerName"`
			RegistrationDate  time.Time `json:"registrationDate"`
		} `json:"animal"`
		Treatments []struct {
			Type        string    `json:"type"`
			Description string    `json:"description"`
			Date        time.Time `json:"date"`
			Cost        float64   `json:"cost"`
		} `json:"treatments"`
		Vaccines []struct {
			Name        string    `json:"name"`
			NextDueDate time.Time `json:"nextDueDate"`
			Due         bool      `json:"due"`
		} `json:"vaccines"`
		MedReports []struct {
			ReportType string    `json:"reportType"`
			Diagnosis  string    `json:"diagnosis"`
			CreatedAt  time.Time `json:"createdAt"`
		} `json:"medReports"`
		Costs struct {
			Total float64 `json:"total"`
		} `json:"costs"`
	} `json:"data"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	client, err := httpclient.New(serverURL, timeout, nil)
	if err != nil {
		return err
	}

	var res verifyResult
	err = client.GetJSON(cmd.Context(), "/api/verify", url.Values{"certificate": {args[0]}}, &res)
	if err != nil {
		return fmt.Errorf("verify %s: %w", args[0], err)
	}
	printRecord(cmd.OutOrStdout(), res)
	return nil
}

func printRecord(w io.Writer, res verifyResult) {
	a := res.Data.Animal
	fmt.Fprintf(w, "Certificate  %s\n", a.CertificateNumber)
	fmt.Fprintf(w, "Animal       %s (%s, %s), %d years\n", a.Name, a.Species, a.Breed, a.Age)
	fmt.Fprintf(w, "Owner        %s\n", a.OwnerName)
	fmt.Fprintf(w, "Registered   %s\n", a.RegistrationDate.Format("2006-01-02"))

	fmt.Fprintf(w, "\nMedical reports (%d)\n", len(res.Data.MedReports))
	for _, r := range res.Data.MedReports {
		fmt.Fprintf(w, "  %s  %-16s %s\n", r.CreatedAt.Format("2006-01-02"), r.ReportType, r.Diagnosis)
	}
	fmt.Fprintf(w, "\nTreatments (%d)\n", len(res.Data.Treatments))
	for _, t := range res.Data.Treatments {
		fmt.Fprintf(w, "  %s  %-14s %-30s $%.2f\n", t.Date.Format("2006-01-02"), t.Type, t.Description, t.Cost)
	}
	fmt.Fprintf(w, "\nVaccines (%d)\n", len(res.Data.Vaccines))
	for _, v := range res.Data.Vaccines {
		status := "ok"
		if v.Due {
			status = "DUE"
		}
		fmt.Fprintf(w, "  %-16s next %s  %s\n", v.Name, v.NextDueDate.Format("2006-01-02"), status)
	}
	fmt.Fprintf(w, "\nTotal cost   $%.2f\n", res.Data.Costs.Total)
}
