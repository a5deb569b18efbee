package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sparklweb1988/microfnance/internal/middleware"
)

// Handlers bundles every HTTP handler wired into the router.
type Handlers struct {
	Borrower   *BorrowerHandler
	Loan       *LoanHandler
	Repayment  *RepaymentHandler
	Collection *CollectionHandler
	Posting    *PostingHandler
	Saving     *SavingHandler
	Expense    *ExpenseHandler
	Branch     *BranchHandler
	Report     *ReportHandler
	WebSocket  *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, h Handlers) {
	// WebSocket endpoint authenticates via query parameter during the
	// handshake, so it sits outside the auth middleware.
	e.GET("/ws", h.WebSocket.HandleWS)

	// API version 1 (protected)
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Borrower routes
	api.POST("/borrowers", h.Borrower.RegisterBorrower)
	api.GET("/borrowers", h.Borrower.GetBorrowers)
	api.GET("/borrowers/:id", h.Borrower.GetBorrower)
	api.GET("/borrowers/:id/profile", h.Borrower.GetProfile)
	api.GET("/borrowers/:id/savings", h.Borrower.GetSavings)
	api.PATCH("/borrowers/:id/status", h.Borrower.UpdateStatus)

	// Loan routes
	api.POST("/loans", h.Loan.CreateLoan)
	api.GET("/loans", h.Loan.GetLoans)
	api.GET("/loans/:id", h.Loan.GetLoan)
	api.PUT("/loans/:id", h.Loan.UpdateLoan)
	api.PATCH("/loans/:id/status", h.Loan.UpdateStatus)

	// Repayment routes
	api.POST("/loans/:id/repayments", h.Repayment.PostRepayment)
	api.GET("/loans/:id/repayments", h.Repayment.GetRepayments)
	api.POST("/loans/:id/recompute-paid", h.Repayment.RecomputePaid)

	// Collection sheet routes
	api.POST("/collection-sheets", h.Collection.CreateSheet)
	api.GET("/collection-sheets", h.Collection.GetSheets)
	api.GET("/collection-sheets/:id", h.Collection.GetSheet)
	api.POST("/collection-sheets/:id/items", h.Collection.RecordCollection)

	// Posting batch routes
	api.POST("/posting-batches", h.Posting.CreateBatch)
	api.GET("/posting-batches", h.Posting.GetBatches)
	api.GET("/posting-batches/:id", h.Posting.GetBatch)
	api.POST("/posting-batches/:id/items", h.Posting.AddItem)

	// Savings routes
	api.POST("/savings", h.Saving.OpenAccount)
	api.GET("/savings", h.Saving.GetAccounts)
	api.GET("/savings/:id", h.Saving.GetAccount)
	api.POST("/savings/:id/deposits", h.Saving.Deposit)

	// Vendor and expense routes
	api.POST("/vendors", h.Expense.CreateVendor)
	api.GET("/vendors", h.Expense.GetVendors)
	api.POST("/expenses", h.Expense.RecordExpense)
	api.GET("/expenses", h.Expense.GetExpenses)
	api.GET("/expenses/:id", h.Expense.GetExpense)
	api.PUT("/expenses/:id", h.Expense.UpdateExpense)

	// Branch and officer routes
	api.POST("/branches", h.Branch.CreateBranch)
	api.GET("/branches", h.Branch.GetBranches)
	api.GET("/branches/:id", h.Branch.GetBranch)
	api.POST("/officers", h.Branch.CreateOfficer)
	api.GET("/officers", h.Branch.GetOfficers)
	api.GET("/officers/:id", h.Branch.GetOfficer)

	// Report routes
	api.GET("/reports/profit-loss", h.Report.ProfitLoss)
	api.GET("/reports/trial-balance", h.Report.TrialBalance)
	api.GET("/reports/balance-sheet", h.Report.BalanceSheet)
	api.GET("/reports/branch-equity", h.Report.BranchEquity)
	api.GET("/reports/officer-performance", h.Report.OfficerPerformance)
	api.GET("/reports/collections/daily", h.Report.DailyCollections)
	api.GET("/reports/collections/monthly", h.Report.MonthlyCollections)
	api.GET("/reports/collections/custom", h.Report.CustomCollections)

	// Dashboard routes
	api.GET("/dashboard/summary", h.Report.Dashboard)
}
