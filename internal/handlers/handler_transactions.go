package handlers

import (
	"github.com/SscSPs/posync/internal/core/domain"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/dto"
	"github.com/gin-gonic/gin"
)

// registerTransactionRoutes registers the deposit and withdrawal lists.
//
//	GET    /deposits                         list
//	POST   /deposits                         submit (timestamped, surcharge added)
//	PUT    /deposits/:index                  edit (keeps the original timestamp)
//	DELETE /deposits/:index                  remove
//	POST   /deposits/:index/insert-below     blank row below index, -1 for the top
//
// /withdrawals follows the same shape.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvc) {
	positionalRoutes[dto.DepositRequest, domain.DepositRecord]{
		category: domain.Deposits,
		list:     transactionService.ListDeposits,
		submit:   transactionService.SubmitDeposit,
		edit:     transactionService.EditDeposit,
		remove:   transactionService.RemoveDeposit,
		insert:   transactionService.InsertDepositBelow,
	}.register(rg, "/deposits")

	positionalRoutes[dto.WithdrawalRequest, domain.WithdrawalRecord]{
		category: domain.Withdrawals,
		list:     transactionService.ListWithdrawals,
		submit:   transactionService.SubmitWithdrawal,
		edit:     transactionService.EditWithdrawal,
		remove:   transactionService.RemoveWithdrawal,
		insert:   transactionService.InsertWithdrawalBelow,
	}.register(rg, "/withdrawals")
}
