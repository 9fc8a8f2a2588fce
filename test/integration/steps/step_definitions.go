package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/event-budget/backend/internal/domain/entity"
	"github.com/event-budget/backend/internal/domain/valueobject"
	"github.com/event-budget/backend/internal/integration/adapters"
	"github.com/event-budget/backend/internal/integration/persistence/model"
)

const defaultTestPassword = "SecurePass123!"

func (t *testContext) anApproverExistsWithEmailAndRole(email, role string) error {
	approverID := uuid.New()
	t.currentApproverID = approverID

	now := time.Now().UTC()
	approver := &model.ApproverModel{
		ID:                 approverID,
		Name:               "Test Approver " + email,
		Email:              email,
		PasswordHash:       hashPassword(defaultTestPassword),
		Role:               role,
		AuthorizationLevel: entity.LevelForRole(entity.ApproverRole(role)),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	return testDB.Conn.Create(approver).Error
}

func (t *testContext) iAmAuthenticatedAs(email string) error {
	var approver model.ApproverModel
	if err := testDB.Conn.Where("email = ?", email).First(&approver).Error; err != nil {
		return fmt.Errorf("approver not found: %w", err)
	}
	t.currentApproverID = approver.ID

	now := time.Now().UTC()
	claims := adapters.CustomClaims{
		ApproverID:         approver.ID.String(),
		Email:              approver.Email,
		Role:               approver.Role,
		AuthorizationLevel: approver.AuthorizationLevel,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "event-budget",
			Subject:   approver.ID.String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to sign access token: %w", err)
	}
	t.accessToken = signed
	return nil
}

func (t *testContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	return nil
}

// aBudgetInStatusExistsWithTotal seeds a budget with the standard category
// catalog, each category allocated its typical percentage of the total.
func (t *testContext) aBudgetInStatusExistsWithTotal(status, total string) error {
	totalBudget, err := decimal.NewFromString(total)
	if err != nil {
		return fmt.Errorf("invalid total %q: %w", total, err)
	}

	budgetID := uuid.New()
	t.budgetID = budgetID
	now := time.Now().UTC()

	budget := &model.BudgetModel{
		ID:                budgetID,
		EventID:           uuid.New(),
		Name:              "Annual Summit",
		Currency:          "USD",
		Status:            status,
		TotalBudget:       totalBudget,
		ContingencyPct:    decimal.NewFromInt(8),
		ContingencyAmount: totalBudget.Mul(decimal.NewFromInt(8)).Div(decimal.NewFromInt(100)),
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := testDB.Conn.Create(budget).Error; err != nil {
		return err
	}

	hundred := decimal.NewFromInt(100)
	for i, spec := range valueobject.DefaultCategoryCatalog() {
		category := &model.CategoryModel{
			ID:              uuid.New(),
			BudgetID:        budgetID,
			Code:            spec.Code,
			Name:            spec.Name,
			AllocatedAmount: totalBudget.Mul(spec.TypicalPct).Div(hundred),
			TypicalPct:      spec.TypicalPct,
			Position:        i,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := testDB.Conn.Create(category).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{budget_id}}", t.budgetID.String())
	content = strings.ReplaceAll(content, "{{request_id}}", t.requestID)
	content = strings.ReplaceAll(content, "{{revision_id}}", t.revisionID)
	content = strings.ReplaceAll(content, "{{approver_id}}", t.currentApproverID.String())
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	url := testServer.URL + path

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureIdentifiers(responseBody)
	return nil
}

// captureIdentifiers pulls well-known IDs out of a response so later steps
// can reference them via placeholders.
func (t *testContext) captureIdentifiers(body map[string]any) {
	if budget, ok := body["budget"].(map[string]any); ok {
		if idStr, ok := budget["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.budgetID = id
			}
		}
	}
	if request, ok := body["request"].(map[string]any); ok {
		if idStr, ok := request["id"].(string); ok {
			t.requestID = idStr
		}
	}
	if idStr, ok := body["id"].(string); ok {
		t.revisionID = idStr
	}
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveElements(field string, quantity int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	arr, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an array: %v", field, value)
	}
	if len(arr) != quantity {
		return fmt.Errorf("field '%s' expected %d elements, got %d", field, quantity, len(arr))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entityModel, ok := testDB.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	slicePtr := newModelSlice(entityModel)
	if err := testDB.Conn.Unscoped().Find(slicePtr.Interface()).Error; err != nil {
		return err
	}

	count := slicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	entityModel, ok := testDB.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	query := testDB.Conn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	slicePtr := newModelSlice(entityModel)
	if err := query.Find(slicePtr.Interface()).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	count := slicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func newModelSlice(entityModel any) reflect.Value {
	entityType := reflect.TypeOf(entityModel).Elem()
	slice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	slicePtr := reflect.New(slice.Type())
	slicePtr.Elem().Set(slice)
	return slicePtr
}

func hashPassword(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashed)
}

// getFieldValue resolves a dot-separated path, with numeric segments
// indexing into arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object
	for _, segment := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}
		if i, err := strconv.Atoi(segment); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}
		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[segment]
	}
	return field
}
