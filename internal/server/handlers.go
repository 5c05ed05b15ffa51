package server

import (
	"net/http"
	"time"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/scenario"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/solver"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTaxYears(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TaxYearsResponse{Years: s.years.Years(), Default: s.years.DefaultKey()})
}

func (s *Server) handleSalary(w http.ResponseWriter, r *http.Request) {
	const calculator = "salary"
	var req SalaryRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	engine, err := s.engineFor(r)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	options, err := req.deductionOptions()
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}

	started := time.Now()
	result, err := engine.Salary(req.GrossAnnual, options, req.advanced(options))
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	s.succeed(w, calculator, started, newSalaryResponse(result))
}

func (s *Server) handleGrossFromNet(w http.ResponseWriter, r *http.Request) {
	const calculator = "gross_from_net"
	var req GrossFromNetRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	cfg, err := s.taxYear(r)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	options, err := req.deductionOptions()
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}

	advanced := req.advanced(options)

	started := time.Now()
	sv := solver.NewDefaultSolver()
	sv.Logger = s.logger
	solved, err := sv.GrossFromNet(req.TargetNet, options, cfg, advanced)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	s.metrics.ObserveSolve(solved.Iterations, solved.Converged())

	salary, err := calculation.CalculateDeductions(solved.Gross, options, cfg, advanced)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	s.succeed(w, calculator, started, GrossFromNetResponse{Solve: solved, Salary: newSalaryResponse(salary)})
}

func (s *Server) handleDividendTax(w http.ResponseWriter, r *http.Request) {
	const calculator = "dividend_tax"
	var req DividendTaxRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	engine, err := s.engineFor(r)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}

	started := time.Now()
	result, err := engine.DividendTax(req.Salary, req.Dividends)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	s.succeed(w, calculator, started, result)
}

func (s *Server) handleCorporationTax(w http.ResponseWriter, r *http.Request) {
	const calculator = "corporation_tax"
	var req CorporationTaxRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	engine, err := s.engineFor(r)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}

	started := time.Now()
	result, err := engine.CorporationTax(req.Profit, req.AssociatedCompanies)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	s.succeed(w, calculator, started, result)
}

func (s *Server) handleStampDuty(w http.ResponseWriter, r *http.Request) {
	const calculator = "stamp_duty"
	var req StampDutyRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	engine, err := s.engineFor(r)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}

	started := time.Now()
	result, err := engine.StampDuty(req.PropertyValue, req.StampDutyOptions)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	s.succeed(w, calculator, started, result)
}

func (s *Server) handleMaternityPay(w http.ResponseWriter, r *http.Request) {
	const calculator = "maternity_pay"
	var req MaternityPayRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	engine, err := s.engineFor(r)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}

	started := time.Now()
	result, err := engine.MaternityPay(req.AverageWeeklyEarnings)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	s.succeed(w, calculator, started, result)
}

func (s *Server) handleMortgage(w http.ResponseWriter, r *http.Request) {
	const calculator = "mortgage"
	var req calculation.MortgageInput
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, calculator, err)
		return
	}

	engine := calculation.NewCalculationEngine(nil)
	engine.SetLogger(s.logger)

	started := time.Now()
	result, err := engine.Mortgage(req)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	s.succeed(w, calculator, started, result)
}

func (s *Server) handleIR35(w http.ResponseWriter, r *http.Request) {
	const calculator = "ir35"
	var req scenario.IR35Input
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	engine, err := s.engineFor(r)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}

	started := time.Now()
	result, err := scenario.NewCompareEngine(engine).IR35(req)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	s.succeed(w, calculator, started, result)
}

func (s *Server) handleBRRRR(w http.ResponseWriter, r *http.Request) {
	const calculator = "brrrr"
	var req scenario.BRRRRInput
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	engine, err := s.engineFor(r)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}

	started := time.Now()
	result, err := scenario.NewCompareEngine(engine).BRRRR(req)
	if err != nil {
		s.fail(w, r, calculator, err)
		return
	}
	s.succeed(w, calculator, started, result)
}
