package geom

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// PseudoBucklingRing is a circular ring deformed by the N-th buckling
// mode of a thin-walled elastic ring:
//
//	x0 = R0 cos(zeta) + eps (cos(N zeta) cos(zeta) - A sin(N zeta) sin(zeta)) sin(2 pi t/T)
//	x1 = R0 sin(zeta) + eps (cos(N zeta) sin(zeta) + A sin(N zeta) cos(zeta)) sin(2 pi t/T)
//
// where A is the ratio of the azimuthal to the radial buckling
// amplitude (A = -1/N for statically buckled rings) and eps the
// buckling amplitude. The single intrinsic coordinate is the azimuthal
// angle of the undeformed circle.
type PseudoBucklingRing struct {
	epsBuckl  float64 // buckling amplitude
	amplRatio float64 // azimuthal to radial amplitude ratio
	nBuckl    float64 // buckling wavenumber, held as a float for the shape formulas
	r0        float64 // undeformed ring radius
	period    float64 // period of oscillation
}

var _ Object = (*PseudoBucklingRing)(nil)

// NewPseudoBucklingRing builds a ring from explicit shape parameters:
// buckling amplitude, amplitude ratio, wavenumber, undeformed radius
// and period of oscillation.
func NewPseudoBucklingRing(epsBuckl, amplRatio float64, nBuckl int, r0, period float64) *PseudoBucklingRing {
	return &PseudoBucklingRing{
		epsBuckl:  epsBuckl,
		amplRatio: amplRatio,
		nBuckl:    float64(nBuckl),
		r0:        r0,
		period:    period,
	}
}

// NewPseudoBucklingRingByMode builds a ring oscillating in one of the
// two Soedel eigenmode branches of a thin-walled elastic ring with
// wall-thickness to radius ratio hOverR. imode selects the branch: 1
// is the fast, predominantly extensional mode, 2 the slow bending
// mode. The amplitude ratio and the period follow from the branch and
// the undeformed radius is one. A wavenumber of one admits only the
// first branch and imode is ignored.
func NewPseudoBucklingRingByMode(epsBuckl, hOverR float64, nBuckl, imode int) *PseudoBucklingRing {
	if imode != 1 && imode != 2 {
		chk.Panic("buckling mode %d is invalid: must be 1 or 2", imode)
	}
	n := float64(nBuckl)
	hr2 := hOverR * hOverR

	// Constants in the Soedel solution
	k1 := (n*n + 1.0) * (n*n*hr2/12.0 + 1.0)
	k2oK1sq := hr2 / 12.0 * n * n * (n*n - 1.0) * (n*n - 1.0) /
		((n*n + 1.0) * (n*n + 1.0) * (n*n*hr2/12.0 + 1.0) * (n*n*hr2/12.0 + 1.0))

	// The two fundamental frequencies with their amplitude ratios
	omega1 := math.Sqrt(0.5 * k1 * (1.0 + math.Sqrt(1.0-4.0*k2oK1sq)))
	omega2 := math.Sqrt(0.5 * k1 * (1.0 - math.Sqrt(1.0-4.0*k2oK1sq)))
	amplRatio1 := n * (n*n*hr2/12.0 + 1.0) / (omega1*omega1 - n*n*(hr2/12.0+1.0))
	amplRatio2 := n * (n*n*hr2/12.0 + 1.0) / (omega2*omega2 - n*n*(hr2/12.0+1.0))

	period := 2.0 * math.Pi / omega1
	amplRatio := amplRatio1
	if nBuckl > 1 && imode == 2 {
		period = 2.0 * math.Pi / omega2
		amplRatio = amplRatio2
	}
	return &PseudoBucklingRing{
		epsBuckl:  epsBuckl,
		amplRatio: amplRatio,
		nBuckl:    n,
		r0:        1.0,
		period:    period,
	}
}

// NLagrangian returns 1, the azimuthal angle.
func (r *PseudoBucklingRing) NLagrangian() int { return 1 }

// NEulerian returns 2.
func (r *PseudoBucklingRing) NEulerian() int { return 2 }

// Position evaluates the ring shape at the given time.
func (r *PseudoBucklingRing) Position(time float64, zeta, x []float64) {
	if ParanoidChecks {
		r.checkSizes(zeta, x)
	}
	mx, my := r.modeShape(zeta[0])
	sinZ, cosZ := math.Sincos(zeta[0])
	s := r.epsBuckl * math.Sin(2.0*math.Pi*time/r.period)
	x[0] = r.r0*cosZ + s*mx
	x[1] = r.r0*sinZ + s*my
}

// Veloc evaluates the wall velocity at the given time.
func (r *PseudoBucklingRing) Veloc(time float64, zeta, v []float64) {
	if ParanoidChecks {
		r.checkSizes(zeta, v)
	}
	mx, my := r.modeShape(zeta[0])
	c := r.epsBuckl * math.Cos(2.0*math.Pi*time/r.period) * 2.0 * math.Pi / r.period
	v[0] = c * mx
	v[1] = c * my
}

// Accel evaluates the wall acceleration at the given time.
func (r *PseudoBucklingRing) Accel(time float64, zeta, a []float64) {
	if ParanoidChecks {
		r.checkSizes(zeta, a)
	}
	mx, my := r.modeShape(zeta[0])
	s := -r.epsBuckl * math.Sin(2.0*math.Pi*time/r.period) *
		4.0 * math.Pi * math.Pi / (r.period * r.period)
	a[0] = s * mx
	a[1] = s * my
}

// modeShape returns the two Cartesian components of the buckling mode
// shape at intrinsic coordinate zeta.
func (r *PseudoBucklingRing) modeShape(zeta float64) (mx, my float64) {
	sinZ, cosZ := math.Sincos(zeta)
	sinN, cosN := math.Sincos(r.nBuckl * zeta)
	mx = cosN*cosZ - r.amplRatio*sinN*sinZ
	my = cosN*sinZ + r.amplRatio*sinN*cosZ
	return
}

func (r *PseudoBucklingRing) checkSizes(zeta, x []float64) {
	if len(zeta) != 1 {
		chk.Panic("zeta has length %d, the ring parametrisation needs 1", len(zeta))
	}
	if len(x) != 2 {
		chk.Panic("coordinate vector has length %d, the ring lives in 2 dimensions", len(x))
	}
}

// EpsBuckl returns the buckling amplitude.
func (r *PseudoBucklingRing) EpsBuckl() float64 { return r.epsBuckl }

// AmplRatio returns the ratio of the azimuthal to the radial buckling
// amplitude.
func (r *PseudoBucklingRing) AmplRatio() float64 { return r.amplRatio }

// NBuckl returns the buckling wavenumber.
func (r *PseudoBucklingRing) NBuckl() float64 { return r.nBuckl }

// R0 returns the undeformed ring radius.
func (r *PseudoBucklingRing) R0() float64 { return r.r0 }

// T returns the period of oscillation.
func (r *PseudoBucklingRing) T() float64 { return r.period }

// SetEpsBuckl sets the buckling amplitude.
func (r *PseudoBucklingRing) SetEpsBuckl(eps float64) { r.epsBuckl = eps }

// SetAmplRatio sets the amplitude ratio.
func (r *PseudoBucklingRing) SetAmplRatio(a float64) { r.amplRatio = a }

// SetNBuckl sets the buckling wavenumber.
func (r *PseudoBucklingRing) SetNBuckl(n int) { r.nBuckl = float64(n) }

// SetR0 sets the undeformed ring radius.
func (r *PseudoBucklingRing) SetR0(r0 float64) { r.r0 = r0 }

// SetT sets the period of oscillation.
func (r *PseudoBucklingRing) SetT(period float64) { r.period = period }
