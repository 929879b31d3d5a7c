package cvpdf

import (
	"testing"

	"github.com/probashi-portal/apiserver/types"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPDF(t *testing.T) {
	data := types.CVData{
		Name:    "Rahim Uddin",
		Email:   "rahim@example.com",
		Phone:   "+8801700000000",
		Address: "Dhaka, Bangladesh",
		Summary: "Experienced welder seeking overseas placement.",
		Experiences: []types.CVExperience{
			{Company: "Chittagong Steel", Title: "Welder", From: "2019", To: "2024", Description: "Structural welding."},
		},
		Educations: []types.CVEducation{
			{School: "Dhaka Polytechnic", Degree: "Diploma in Mechanical", From: "2015", To: "2019"},
		},
		Skills:         []string{"MIG welding", "Blueprint reading"},
		Certifications: []string{"BMET welding certificate"},
	}

	pdf, err := Render(data)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	require.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderMinimalData(t *testing.T) {
	pdf, err := Render(types.CVData{Name: "Rahim Uddin"})
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(pdf[:4]))
}
