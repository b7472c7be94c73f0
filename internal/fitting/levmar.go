package fitting

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/errors"
)

// modelFunc evaluates a fit model at x for the given parameter vector.
type modelFunc func(params []float64, x float64) float64

// lsqProblem is a bounded nonlinear least-squares problem.
type lsqProblem struct {
	xs, ys []float64
	model  modelFunc
	lower  []float64
	upper  []float64
}

// lsqSolution carries the converged parameters and, when the normal matrix
// was invertible, the parameter covariance estimate.
type lsqSolution struct {
	params     []float64
	covariance *mat.Dense // nil when unavailable
	rss        float64
}

const (
	lmMaxIterations = 200
	lmInitialLambda = 1e-3
	lmLambdaUp      = 10.0
	lmLambdaDown    = 0.1
	lmRelTolerance  = 1e-10
)

// solveLM runs a damped least-squares (Levenberg-Marquardt) iteration with a
// numerically estimated Jacobian and box constraints applied by clamping.
func solveLM(p lsqProblem, init []float64) (*lsqSolution, error) {
	n := len(p.xs)
	m := len(init)
	if n < m {
		return nil, errors.Newf("underdetermined fit: %d points for %d parameters", n, m).
			Category(errors.CategoryCurveFitting).
			Build()
	}

	params := clampParams(append([]float64(nil), init...), p.lower, p.upper)
	rss := residualSumSquares(p, params)
	if math.IsNaN(rss) || math.IsInf(rss, 0) {
		return nil, errors.NewStd("initial parameters produce non-finite residuals")
	}

	lambda := lmInitialLambda
	jac := mat.NewDense(n, m, nil)
	res := mat.NewVecDense(n, nil)

	for iter := 0; iter < lmMaxIterations; iter++ {
		fillResiduals(p, params, res)
		fillJacobian(p, params, jac)

		var jtj mat.Dense
		jtj.Mul(jac.T(), jac)
		var jtr mat.VecDense
		jtr.MulVec(jac.T(), res)

		improved := false
		for tries := 0; tries < 8; tries++ {
			damped := mat.DenseCopyOf(&jtj)
			for i := 0; i < m; i++ {
				damped.Set(i, i, damped.At(i, i)*(1+lambda))
			}

			var delta mat.VecDense
			if err := delta.SolveVec(damped, &jtr); err != nil {
				lambda *= lmLambdaUp
				continue
			}

			trial := make([]float64, m)
			for i := range trial {
				trial[i] = params[i] + delta.AtVec(i)
			}
			trial = clampParams(trial, p.lower, p.upper)

			trialRSS := residualSumSquares(p, trial)
			if !math.IsNaN(trialRSS) && trialRSS < rss {
				relImprovement := (rss - trialRSS) / math.Max(rss, 1e-300)
				params = trial
				rss = trialRSS
				lambda = math.Max(lambda*lmLambdaDown, 1e-12)
				improved = true
				if relImprovement < lmRelTolerance {
					return finishLM(p, params, rss, jac)
				}
				break
			}
			lambda *= lmLambdaUp
		}

		if !improved {
			// Damping exhausted without progress; accept the current point.
			return finishLM(p, params, rss, jac)
		}
	}
	return finishLM(p, params, rss, jac)
}

// finishLM assembles the solution and its covariance from the final Jacobian.
func finishLM(p lsqProblem, params []float64, rss float64, jac *mat.Dense) (*lsqSolution, error) {
	n := len(p.xs)
	m := len(params)
	sol := &lsqSolution{params: params, rss: rss}

	if n > m {
		fillJacobian(p, params, jac)
		var jtj mat.Dense
		jtj.Mul(jac.T(), jac)
		var inv mat.Dense
		if err := inv.Inverse(&jtj); err == nil {
			sigma2 := rss / float64(n-m)
			inv.Scale(sigma2, &inv)
			sol.covariance = &inv
		}
	}
	return sol, nil
}

func residualSumSquares(p lsqProblem, params []float64) float64 {
	rss := 0.0
	for i, x := range p.xs {
		d := p.ys[i] - p.model(params, x)
		rss += d * d
	}
	return rss
}

func fillResiduals(p lsqProblem, params []float64, out *mat.VecDense) {
	for i, x := range p.xs {
		out.SetVec(i, p.ys[i]-p.model(params, x))
	}
}

// fillJacobian estimates df/dparam by forward differences. With residuals
// r = y - f, the LM step solves (JᵀJ + λD)δ = Jᵀr for J = df/dparam.
func fillJacobian(p lsqProblem, params []float64, out *mat.Dense) {
	m := len(params)
	perturbed := append([]float64(nil), params...)
	for j := 0; j < m; j++ {
		step := 1e-6 * math.Abs(params[j])
		if step < 1e-8 {
			step = 1e-8
		}
		perturbed[j] = params[j] + step
		for i, x := range p.xs {
			base := p.model(params, x)
			bumped := p.model(perturbed, x)
			out.Set(i, j, (bumped-base)/step)
		}
		perturbed[j] = params[j]
	}
}

func clampParams(params, lower, upper []float64) []float64 {
	for i := range params {
		if lower != nil && params[i] < lower[i] {
			params[i] = lower[i]
		}
		if upper != nil && params[i] > upper[i] {
			params[i] = upper[i]
		}
	}
	return params
}

// rSquared computes the coefficient of determination for the fitted model.
func rSquared(p lsqProblem, params []float64) float64 {
	mean := 0.0
	for _, y := range p.ys {
		mean += y
	}
	mean /= float64(len(p.ys))

	tss := 0.0
	for _, y := range p.ys {
		d := y - mean
		tss += d * d
	}
	if tss == 0 {
		return 0
	}
	return 1 - residualSumSquares(p, params)/tss
}
