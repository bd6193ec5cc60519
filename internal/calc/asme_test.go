package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shared fixture: P=225 psi, S=20700 psi, E=1.0, D=130.25 in.
const (
	fixP = 225.0
	fixS = 20700.0
	fixE = 1.0
	fixD = 130.25
)

func TestShellMinThickness(t *testing.T) {
	t.Parallel()

	// t = PR / (SE - 0.6P) = 225 * 65.125 / (20700 - 135)
	got, err := ShellMinThickness(fixP, fixD/2, fixS, fixE)
	require.NoError(t, err)
	assert.InDelta(t, 0.71253, got, 1e-4)
}

func TestShellMAWP_RoundTrips(t *testing.T) {
	t.Parallel()

	tmin, err := ShellMinThickness(fixP, fixD/2, fixS, fixE)
	require.NoError(t, err)
	mawp, err := ShellMAWP(tmin, fixD/2, fixS, fixE)
	require.NoError(t, err)
	assert.InDelta(t, fixP, mawp, 1e-6, "MAWP at minimum thickness equals design pressure")
}

func TestEllipsoidalMinThickness(t *testing.T) {
	t.Parallel()

	// t = PD / (2SE - 0.2P) = 225 * 130.25 / (41400 - 45). The diameter form:
	// feeding the radius here would halve the result.
	got, err := EllipsoidalMinThickness(fixP, fixD, fixS, fixE)
	require.NoError(t, err)
	assert.InDelta(t, 0.70865, got, 1e-4)

	half, err := EllipsoidalMinThickness(fixP, fixD/2, fixS, fixE)
	require.NoError(t, err)
	assert.InDelta(t, got/2, half, 1e-9)
}

func TestEllipsoidalMAWP_RoundTrips(t *testing.T) {
	t.Parallel()

	tmin, err := EllipsoidalMinThickness(fixP, fixD, fixS, fixE)
	require.NoError(t, err)
	mawp, err := EllipsoidalMAWP(tmin, fixD, fixS, fixE)
	require.NoError(t, err)
	assert.InDelta(t, fixP, mawp, 1e-6)
}

func TestTorisphericalM(t *testing.T) {
	t.Parallel()

	// L/r = 1/0.06 under the standard substitution: M = (3 + sqrt(16.667)) / 4.
	m, err := TorisphericalM(fixD, 0.06*fixD)
	require.NoError(t, err)
	assert.InDelta(t, 1.7706, m, 1e-4)

	_, err = TorisphericalM(0, 6)
	assert.Error(t, err)
	_, err = TorisphericalM(100, 0)
	assert.Error(t, err)
}

func TestTorisphericalMinThickness_StandardSubstitution(t *testing.T) {
	t.Parallel()

	// t = PLM / (2SE - 0.2P) with L = D, r = 0.06D.
	got, err := TorisphericalMinThickness(fixP, fixD, 0.06*fixD, fixS, fixE)
	require.NoError(t, err)
	assert.InDelta(t, 1.2548, got, 1e-3)
}

func TestTorisphericalMAWP_RoundTrips(t *testing.T) {
	t.Parallel()

	l, r := fixD, 0.06*fixD
	tmin, err := TorisphericalMinThickness(fixP, l, r, fixS, fixE)
	require.NoError(t, err)
	mawp, err := TorisphericalMAWP(tmin, l, r, fixS, fixE)
	require.NoError(t, err)
	assert.InDelta(t, fixP, mawp, 1e-6)
}

func TestHemisphericalMinThickness(t *testing.T) {
	t.Parallel()

	// Hemispherical with L = D/2 equals the ellipsoidal diameter form halved.
	hemi, err := HemisphericalMinThickness(fixP, fixD/2, fixS, fixE)
	require.NoError(t, err)
	ell, err := EllipsoidalMinThickness(fixP, fixD, fixS, fixE)
	require.NoError(t, err)
	assert.InDelta(t, ell/2, hemi, 1e-9)
}

func TestASME_DegenerateInputs(t *testing.T) {
	t.Parallel()

	_, err := ShellMinThickness(100000, 65, 20700, 1.0)
	assert.Error(t, err, "stress term exceeded by 0.6P")

	_, err = ShellMAWP(0, 65, 20700, 1.0)
	assert.Error(t, err)

	_, err = EllipsoidalMinThickness(500000, 130, 20700, 1.0)
	assert.Error(t, err)

	_, err = HemisphericalMAWP(-0.1, 65, 20700, 1.0)
	assert.Error(t, err)
}
