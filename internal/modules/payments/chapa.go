package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/4shenafi/alx-travel-app-0x02/internal/config"
	"github.com/4shenafi/alx-travel-app-0x02/internal/shared/money"
)

// ChapaProvider talks to the Chapa transaction API with a bearer secret key.
type ChapaProvider struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewChapaProvider(cfg config.ChapaConfig) *ChapaProvider {
	return &ChapaProvider{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		client:    &http.Client{},
	}
}

// SetHTTPClient overrides the HTTP client, for tests.
func (p *ChapaProvider) SetHTTPClient(c *http.Client) { p.client = c }

func (p *ChapaProvider) Name() string { return "chapa" }

type chapaInitPayload struct {
	Amount        string             `json:"amount"`
	Currency      string             `json:"currency"`
	Email         string             `json:"email"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	PhoneNumber   string             `json:"phone_number"`
	TxRef         string             `json:"tx_ref"`
	CallbackURL   string             `json:"callback_url"`
	ReturnURL     string             `json:"return_url"`
	Customization chapaCustomization `json:"customization"`
}

type chapaCustomization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type chapaInitResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Reference   string `json:"reference"`
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

type chapaVerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status        string `json:"status"`
		PaymentMethod string `json:"payment_method"`
	} `json:"data"`
}

func (p *ChapaProvider) InitializeTransaction(ctx context.Context, req InitializeRequest) (InitializeResult, error) {
	payload := chapaInitPayload{
		Amount:      money.FormatAmount(req.AmountCents),
		Currency:    req.Currency,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		TxRef:       req.TxRef,
		CallbackURL: req.CallbackURL,
		ReturnURL:   req.ReturnURL,
		Customization: chapaCustomization{
			Title:       req.Title,
			Description: req.Description,
		},
	}

	body, status, err := p.do(ctx, http.MethodPost, p.baseURL+"/transaction/initialize", payload)
	if err != nil {
		return InitializeResult{}, &GatewayError{Op: "initialize", Err: err}
	}
	if status != http.StatusOK {
		return InitializeResult{}, &GatewayError{Op: "initialize", StatusCode: status, Body: string(body)}
	}

	var resp chapaInitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return InitializeResult{}, &GatewayError{Op: "initialize", StatusCode: status, Body: string(body), Err: err}
	}

	return InitializeResult{
		TransactionID: resp.Data.Reference,
		CheckoutURL:   resp.Data.CheckoutURL,
		Raw:           body,
	}, nil
}

func (p *ChapaProvider) VerifyTransaction(ctx context.Context, transactionID string) (VerifyResult, error) {
	body, status, err := p.do(ctx, http.MethodGet, p.baseURL+"/transaction/verify/"+transactionID, nil)
	if err != nil {
		return VerifyResult{}, &GatewayError{Op: "verify", Err: err}
	}
	if status != http.StatusOK {
		return VerifyResult{}, &GatewayError{Op: "verify", StatusCode: status, Body: string(body)}
	}

	var resp chapaVerifyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return VerifyResult{}, &GatewayError{Op: "verify", StatusCode: status, Body: string(body), Err: err}
	}

	return VerifyResult{
		Status:        resp.Data.Status,
		PaymentMethod: resp.Data.PaymentMethod,
		Message:       resp.Message,
		Raw:           body,
	}, nil
}

func (p *ChapaProvider) do(ctx context.Context, method, url string, payload any) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.secretKey))
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, err
	}
	return body, res.StatusCode, nil
}
