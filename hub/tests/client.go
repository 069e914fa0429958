package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"founderhub/hub/services"

	"github.com/go-chi/chi/v5"
)

type httpTestRequest struct {
	api http.Handler

	method   string
	endpoint string
	headers  map[string]string
	json     interface{}
	body     io.Reader
	login    *loginInfo
}

func newHttpTestRequest(api http.Handler, method, endpoint string) *httpTestRequest {
	return &httpTestRequest{
		api:      api,
		method:   method,
		endpoint: endpoint,
	}
}

func (r *httpTestRequest) Header(key, value string) *httpTestRequest {
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
	return r
}

func (r *httpTestRequest) Login(email, password string) *httpTestRequest {
	r.login = &loginInfo{Email: email, Password: password}
	return r
}

func (r *httpTestRequest) Auth(token string) *httpTestRequest {
	return r.Header("Authorization", fmt.Sprintf("Bearer %v", token))
}

func (r *httpTestRequest) Json(data interface{}) *httpTestRequest {
	r.json = data
	return r
}

// response body will be parsed into result, passing nil indicates that no result is returned.
func (r *httpTestRequest) Do(result interface{}) error {
	if r.json != nil {
		body := new(bytes.Buffer)
		if err := json.NewEncoder(body).Encode(r.json); err != nil {
			return fmt.Errorf("error encoding json body for endpoint %v: %w", r.endpoint, err)
		}
		r.body = body
	}

	req := httptest.NewRequest(r.method, r.endpoint, r.body)
	for k, v := range r.headers {
		req.Header.Add(k, v)
	}

	if r.login != nil {
		req.SetBasicAuth(r.login.Email, r.login.Password)
	}

	w := httptest.NewRecorder()

	r.api.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		if res.StatusCode == http.StatusUnauthorized {
			return ErrUnauthorized
		}
		if res.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("%v request to endpoint %v returned status %d, content '%v'", r.method, r.endpoint, res.StatusCode, w.Body.String())
	}

	if result != nil {
		if err := json.NewDecoder(res.Body).Decode(result); err != nil {
			return fmt.Errorf("error parsing %v response from endpoint %v: %w", r.method, r.endpoint, err)
		}
	}

	return nil
}

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

type client struct {
	api       chi.Router
	authToken string
	userId    string
}

func (c *client) Get(endpoint string) *httpTestRequest {
	r := newHttpTestRequest(c.api, "GET", endpoint)
	if c.authToken != "" {
		return r.Auth(c.authToken)
	}
	return r
}

func (c *client) Post(endpoint string) *httpTestRequest {
	r := newHttpTestRequest(c.api, "POST", endpoint)
	if c.authToken != "" {
		return r.Auth(c.authToken)
	}
	return r
}

func (c *client) Delete(endpoint string) *httpTestRequest {
	r := newHttpTestRequest(c.api, "DELETE", endpoint)
	if c.authToken != "" {
		return r.Auth(c.authToken)
	}
	return r
}

type loginInfo struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *client) signup(email, password string) (loginInfo, error) {
	body := map[string]string{"email": email, "password": password}

	if err := c.Post("/user/signup").Json(body).Do(nil); err != nil {
		return loginInfo{}, err
	}

	return loginInfo{Email: email, Password: password}, nil
}

func (c *client) login(login loginInfo) error {
	var res map[string]string
	if err := c.Get("/user/login").Login(login.Email, login.Password).Do(&res); err != nil {
		return err
	}

	c.authToken = res["access_token"]
	c.userId = res["user_id"]

	return nil
}

func (c *client) userInfo() (services.UserInfo, error) {
	var res services.UserInfo
	err := c.Get("/user/info").Do(&res)
	return res, err
}

func (c *client) completeOnboarding(body map[string]interface{}) (services.UserInfo, error) {
	var res services.UserInfo
	err := c.Post("/user/onboarding").Json(body).Do(&res)
	return res, err
}

func (c *client) badges() ([]services.BadgeInfo, error) {
	var res []services.BadgeInfo
	err := c.Get("/user/badges").Do(&res)
	return res, err
}

func (c *client) deleteUser(userId string) error {
	return c.Delete(fmt.Sprintf("/user/%v", userId)).Do(nil)
}

func (c *client) generateIdeas(body map[string]interface{}) ([]services.IdeaInfo, error) {
	var res []services.IdeaInfo
	err := c.Post("/ideas/generate").Json(body).Do(&res)
	return res, err
}

func (c *client) listIdeas() ([]services.IdeaInfo, error) {
	var res []services.IdeaInfo
	err := c.Get("/ideas/list").Do(&res)
	return res, err
}

func (c *client) generateRoadmap(body map[string]interface{}) (services.RoadmapInfo, error) {
	var res services.RoadmapInfo
	err := c.Post("/roadmap/generate").Json(body).Do(&res)
	return res, err
}

func (c *client) getRoadmap(roadmapId string) (services.RoadmapDetail, error) {
	var res services.RoadmapDetail
	err := c.Get(fmt.Sprintf("/roadmap/%v", roadmapId)).Do(&res)
	return res, err
}

func (c *client) completeMilestone(milestoneId string) (services.MilestoneInfo, error) {
	var res services.MilestoneInfo
	err := c.Post(fmt.Sprintf("/roadmap/milestone/%v/complete", milestoneId)).Do(&res)
	return res, err
}

func (c *client) chat(message string) (services.MessageInfo, error) {
	var res services.MessageInfo
	err := c.Post("/mentor/chat").Json(map[string]string{"message": message}).Do(&res)
	return res, err
}

func (c *client) mentorMessages() ([]services.MessageInfo, error) {
	var res []services.MessageInfo
	err := c.Get("/mentor/messages").Do(&res)
	return res, err
}

func (c *client) generateDocument(body map[string]interface{}) (services.DocumentInfo, error) {
	var res services.DocumentInfo
	err := c.Post("/legal/generate").Json(body).Do(&res)
	return res, err
}

func (c *client) listDocuments() ([]services.DocumentInfo, error) {
	var res []services.DocumentInfo
	err := c.Get("/legal/documents").Do(&res)
	return res, err
}

func (c *client) complianceItems() ([]services.ComplianceItemInfo, error) {
	var res []services.ComplianceItemInfo
	err := c.Get("/legal/compliance").Do(&res)
	return res, err
}

func (c *client) completeComplianceItem(itemId string) (services.ComplianceItemInfo, error) {
	var res services.ComplianceItemInfo
	err := c.Post(fmt.Sprintf("/legal/compliance/%v/complete", itemId)).Do(&res)
	return res, err
}

func (c *client) startComplianceItem(itemId string) (services.ComplianceItemInfo, error) {
	var res services.ComplianceItemInfo
	err := c.Post(fmt.Sprintf("/legal/compliance/%v/start", itemId)).Do(&res)
	return res, err
}

func (c *client) fundingMatches() ([]services.MatchInfo, error) {
	var res []services.MatchInfo
	err := c.Get("/funding/matches").Do(&res)
	return res, err
}

func (c *client) createFundingMatch(body map[string]interface{}) (services.MatchInfo, error) {
	var res services.MatchInfo
	err := c.Post("/funding/matches").Json(body).Do(&res)
	return res, err
}

func (c *client) createSubscription() (services.SubscriptionInfo, error) {
	var res services.SubscriptionInfo
	err := c.Post("/billing/subscription").Do(&res)
	return res, err
}
