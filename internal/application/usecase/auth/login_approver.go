// Package auth contains approver account use cases.
package auth

import (
	"context"
	"fmt"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
)

// LoginApproverInput represents the input for approver login.
type LoginApproverInput struct {
	Email    string
	Password string
}

// LoginApproverOutput represents the output of approver login.
type LoginApproverOutput struct {
	AccessToken string
	Approver    *entity.Approver
}

// LoginApproverUseCase handles approver login logic.
type LoginApproverUseCase struct {
	approverRepo    adapter.ApproverRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginApproverUseCase creates a new LoginApproverUseCase instance.
func NewLoginApproverUseCase(
	approverRepo adapter.ApproverRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginApproverUseCase {
	return &LoginApproverUseCase{
		approverRepo:    approverRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the approver login.
func (uc *LoginApproverUseCase) Execute(ctx context.Context, input LoginApproverInput) (*LoginApproverOutput, error) {
	approver, err := uc.approverRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		// Generic error to prevent email enumeration
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid email or password",
			domainerror.ErrInvalidCredentials,
		)
	}

	if err := uc.passwordService.VerifyPassword(approver.PasswordHash, input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid email or password",
			domainerror.ErrInvalidCredentials,
		)
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, approver)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &LoginApproverOutput{
		AccessToken: token,
		Approver:    approver,
	}, nil
}
