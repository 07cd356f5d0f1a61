package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuildMode(t *testing.T) {
	tests := []struct {
		in      string
		want    BuildMode
		wantErr bool
	}{
		{in: "coverage", want: ModeCoverage},
		{in: " Cover ", want: ModeCoverage},
		{in: "pgo", want: ModeProfileGuided},
		{in: "profile-guided", want: ModeProfileGuided},
		{in: "", want: ModePlain},
		{in: "plain", want: ModePlain},
		{in: "race", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBuildMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildMode_CollectsProfiles(t *testing.T) {
	assert.True(t, ModeCoverage.CollectsProfiles())
	assert.True(t, ModeProfileGuided.CollectsProfiles())
	assert.False(t, ModePlain.CollectsProfiles())
}

func TestBuildSpec_Flags(t *testing.T) {
	tests := []struct {
		name string
		spec BuildSpec
		want []string
	}{
		{
			name: "coverage",
			spec: BuildSpec{Mode: ModeCoverage, Tags: []string{"embed", "profiler"}},
			want: []string{"-buildmode=exe", "-cover", "-covermode=atomic", "-tags", "embed,profiler"},
		},
		{
			name: "pgo with profile",
			spec: BuildSpec{Mode: ModeProfileGuided, ProfilePath: "/p/default.pgo", Tags: []string{"pgo"}},
			want: []string{"-pgo=/p/default.pgo", "-tags", "pgo"},
		},
		{
			name: "pgo without profile",
			spec: BuildSpec{Mode: ModeProfileGuided},
			want: nil,
		},
		{
			name: "plain",
			spec: BuildSpec{Mode: ModePlain, Tags: []string{"embed"}},
			want: []string{"-tags", "embed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.Flags())
		})
	}
}

func TestBuildSpec_WithProfileCopies(t *testing.T) {
	base := BuildSpec{Mode: ModeProfileGuided, Tags: []string{"pgo"}}
	derived := base.WithProfile("/p/default.pgo")
	derived.Tags[0] = "changed"

	assert.Empty(t, base.ProfilePath)
	assert.Equal(t, "pgo", base.Tags[0])
	assert.True(t, BuildSpec{Mode: ModeCoverage}.PreserveBinary())
	assert.False(t, derived.PreserveBinary())
}
