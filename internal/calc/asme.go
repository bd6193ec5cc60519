package calc

import (
	"math"

	"github.com/rotisserie/eris"
)

// ASME Section VIII Division 1 thickness and MAWP formulas. All pressures in
// psi, dimensions in inches. Every function validates its denominator so a
// nonsensical input surfaces as an error instead of an absurd thickness.

// HeadKind selects the head geometry formula family.
type HeadKind string

const (
	HeadEllipsoidal   HeadKind = "ellipsoidal"
	HeadTorispherical HeadKind = "torispherical"
	HeadHemispherical HeadKind = "hemispherical"
)

// ShellMinThickness computes t = PR / (SE − 0.6P) for a cylindrical shell
// under internal pressure (UG-27). R is the inside radius.
func ShellMinThickness(p, insideRadius, s, e float64) (float64, error) {
	den := s*e - 0.6*p
	if den <= 0 {
		return 0, eris.New("asme: shell stress term not greater than 0.6P")
	}
	return p * insideRadius / den, nil
}

// ShellMAWP computes MAWP = SEt / (R + 0.6t) for a cylindrical shell.
func ShellMAWP(t, insideRadius, s, e float64) (float64, error) {
	if t <= 0 {
		return 0, eris.New("asme: shell thickness must be positive")
	}
	return s * e * t / (insideRadius + 0.6*t), nil
}

// EllipsoidalMinThickness computes t = PD / (2SE − 0.2P) for a 2:1
// ellipsoidal head (UG-32(d)). D is the inside diameter, not the radius;
// the radius form is the hemispherical formula and yields half the required
// thickness.
func EllipsoidalMinThickness(p, insideDiameter, s, e float64) (float64, error) {
	den := 2*s*e - 0.2*p
	if den <= 0 {
		return 0, eris.New("asme: ellipsoidal stress term not greater than 0.2P")
	}
	return p * insideDiameter / den, nil
}

// EllipsoidalMAWP computes MAWP = 2SEt / (D + 0.2t).
func EllipsoidalMAWP(t, insideDiameter, s, e float64) (float64, error) {
	if t <= 0 {
		return 0, eris.New("asme: head thickness must be positive")
	}
	return 2 * s * e * t / (insideDiameter + 0.2*t), nil
}

// TorisphericalM computes the M factor: M = (3 + sqrt(L/r)) / 4, where L is
// the crown radius and r the knuckle radius.
func TorisphericalM(crownRadius, knuckleRadius float64) (float64, error) {
	if crownRadius <= 0 || knuckleRadius <= 0 {
		return 0, eris.New("asme: crown and knuckle radii must be positive")
	}
	return (3 + math.Sqrt(crownRadius/knuckleRadius)) / 4, nil
}

// TorisphericalMinThickness computes t = PLM / (2SE − 0.2P) (UG-32(e),
// appendix 1-4 general form).
func TorisphericalMinThickness(p, crownRadius, knuckleRadius, s, e float64) (float64, error) {
	m, err := TorisphericalM(crownRadius, knuckleRadius)
	if err != nil {
		return 0, err
	}
	den := 2*s*e - 0.2*p
	if den <= 0 {
		return 0, eris.New("asme: torispherical stress term not greater than 0.2P")
	}
	return p * crownRadius * m / den, nil
}

// TorisphericalMAWP computes MAWP = 2SEt / (LM + 0.2t).
func TorisphericalMAWP(t, crownRadius, knuckleRadius, s, e float64) (float64, error) {
	if t <= 0 {
		return 0, eris.New("asme: head thickness must be positive")
	}
	m, err := TorisphericalM(crownRadius, knuckleRadius)
	if err != nil {
		return 0, err
	}
	return 2 * s * e * t / (crownRadius*m + 0.2*t), nil
}

// HemisphericalMinThickness computes t = PL / (2SE − 0.2P), with L the inside
// spherical radius (UG-32(f)).
func HemisphericalMinThickness(p, insideRadius, s, e float64) (float64, error) {
	den := 2*s*e - 0.2*p
	if den <= 0 {
		return 0, eris.New("asme: hemispherical stress term not greater than 0.2P")
	}
	return p * insideRadius / den, nil
}

// HemisphericalMAWP computes MAWP = 2SEt / (L + 0.2t).
func HemisphericalMAWP(t, insideRadius, s, e float64) (float64, error) {
	if t <= 0 {
		return 0, eris.New("asme: head thickness must be positive")
	}
	return 2 * s * e * t / (insideRadius + 0.2*t), nil
}
