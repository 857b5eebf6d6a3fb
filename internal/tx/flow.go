package tx

import (
	"context"
	"math/big"

	"llamalend/core"
	"llamalend/internal/llamma"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/yiplee/structs"
)

// Approval allowance phase of a mutating operation, empty when none is needed
type Approval struct {
	Tokens  []common.Address
	Amounts []*big.Int
	Spender common.Address
}

// Empty nothing to approve
func (a Approval) Empty() bool {
	return len(a.Tokens) == 0
}

// Flow runs the allowance phase then the estimate or submit phase of a call
type Flow struct {
	submitter core.ITxSubmitter
	allowance core.IAllowanceManager
}

// NewFlow new flow
func NewFlow(submitter core.ITxSubmitter, allowance core.IAllowanceManager) *Flow {
	return &Flow{
		submitter: submitter,
		allowance: allowance,
	}
}

// Signer owner of every submitted call
func (f *Flow) Signer() common.Address {
	return f.submitter.Signer()
}

// IsApproved the spender may pull every amount
func (f *Flow) IsApproved(ctx context.Context, a Approval) (bool, error) {
	if a.Empty() {
		return true, nil
	}

	return f.allowance.HasAllowance(ctx, a.Tokens, a.Amounts, f.Signer(), a.Spender)
}

// Approve raise the missing allowances
func (f *Flow) Approve(ctx context.Context, a Approval) ([]common.Hash, error) {
	if a.Empty() {
		return nil, nil
	}

	return f.allowance.EnsureAllowance(ctx, a.Tokens, a.Amounts, a.Spender)
}

// ApproveEstimateGas gas of the missing approvals
func (f *Flow) ApproveEstimateGas(ctx context.Context, a Approval) (uint64, error) {
	if a.Empty() {
		return 0, nil
	}

	return f.allowance.EnsureAllowanceEstimateGas(ctx, a.Tokens, a.Amounts, a.Spender)
}

// EstimateGas gas of call, refusing to estimate a call that would revert
// for lack of allowance
func (f *Flow) EstimateGas(ctx context.Context, a Approval, call *core.Call) (uint64, error) {
	approved, err := f.IsApproved(ctx, a)
	if err != nil {
		return 0, err
	}

	if !approved {
		return 0, core.NewError(core.ErrApprovalRequired, "token", a.Tokens[0].Hex(), nil)
	}

	return f.submitter.EstimateGas(ctx, call)
}

// Execute approve then submit call with a 30% gas buffer
func (f *Flow) Execute(ctx context.Context, a Approval, call *core.Call) (common.Hash, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"to":     call.To.Hex(),
		"method": call.Method,
	})

	if hashes, err := f.Approve(ctx, a); err != nil {
		log.WithError(err).Errorln("allowance.EnsureAllowance")
		return common.Hash{}, err
	} else if len(hashes) > 0 {
		log.Debugln("approved", len(hashes), "tokens")
	}

	gas, err := f.submitter.EstimateGas(ctx, call)
	if err != nil {
		log.WithError(err).Errorln("submitter.EstimateGas")
		return common.Hash{}, err
	}

	gasLimit := llamma.GasLimit(gas)
	hash, err := f.submitter.Submit(ctx, call, gasLimit)
	if err != nil {
		log.WithError(err).Errorln("submitter.Submit")
		return common.Hash{}, err
	}

	log.WithFields(structs.Map(call)).WithField("gas_limit", gasLimit).Infoln("submitted", hash.Hex())
	return hash, nil
}
