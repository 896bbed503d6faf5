package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	echoapi "github.com/stjosephs/hostel/apps/api/echo"
	"github.com/stjosephs/hostel/core/access"
	testutil "github.com/stjosephs/hostel/tests"
)

func Test_staffApi_login(t *testing.T) {
	app := setup(t)

	testutil.CreateStaff(t, app.staffRepo, "headmatron", "Grace", "Phiri", "s3cr3t", access.RoleChiefMatron, true)
	testutil.CreateStaff(t, app.staffRepo, "sleeper", "Ruth", "Zulu", "s3cr3t", access.RoleJrMatron, false)

	tests := []httpTest{
		{
			name: "valid credentials", body: marchallObj(t, echoapi.LoginRequest{Username: "headmatron", Password: "s3cr3t"}),
			wantCode: http.StatusOK,
		},
		{
			name: "wrong password", body: marchallObj(t, echoapi.LoginRequest{Username: "headmatron", Password: "nope"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "unknown username", body: marchallObj(t, echoapi.LoginRequest{Username: "ghost", Password: "s3cr3t"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "deactivated account", body: marchallObj(t, echoapi.LoginRequest{Username: "sleeper", Password: "s3cr3t"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/staff/login", tt.body)
			app.server.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %v; wantCode %v: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode == http.StatusOK {
				var resp echoapi.LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshalling LoginResponse: %v", err)
				}
				if resp.Token == "" {
					t.Error("login returned an empty token")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_staffApi_me(t *testing.T) {
	app := setup(t)
	stf := testutil.CreateStaff(t, app.staffRepo, "headmatron", "Grace", "Phiri", "s3cr3t", access.RoleChiefMatron, true)

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "own account", token: getToken(t, stf), wantCode: http.StatusOK, wantData: marchallObj(t, stf)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/staff/me", tt.token)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_staffApi_create(t *testing.T) {
	app := setup(t)

	chief := testutil.CreateStaff(t, app.staffRepo, "headmatron", "Grace", "Phiri", "s3cr3t", access.RoleChiefMatron, true)
	matron := testutil.CreateStaff(t, app.staffRepo, "jrmatron", "Mary", "Banda", "s3cr3t", access.RoleJrMatron, true)

	newStaffBody := func(uname, role string) []byte {
		return marchallObj(t, map[string]string{
			"username":         uname,
			"first_name":       "New",
			"last_name":        "Matron",
			"role":             role,
			"password":         "s3cr3t",
			"password_confirm": "s3cr3t",
		})
	}

	tests := []httpTest{
		{name: "auth required", body: newStaffBody("matron1", "jr-matron"), wantCode: http.StatusUnauthorized},
		{name: "scope required", body: newStaffBody("matron1", "jr-matron"), token: getToken(t, matron), wantCode: http.StatusForbidden},
		{name: "chief creates matron", body: newStaffBody("matron1", "jr-matron"), token: getToken(t, chief), wantCode: http.StatusCreated},
		{name: "chief cannot create chief", body: newStaffBody("matron2", "chief-matron"), token: getToken(t, chief), wantCode: http.StatusForbidden},
		{name: "chief cannot create super", body: newStaffBody("matron3", "super-user"), token: getToken(t, chief), wantCode: http.StatusForbidden},
		{name: "duplicate username", body: newStaffBody("matron1", "jr-matron"), token: getToken(t, chief), wantCode: http.StatusConflict},
		{name: "invalid role", body: newStaffBody("matron4", "janitor"), token: getToken(t, chief), wantCode: http.StatusBadRequest},
		{name: "short username", body: newStaffBody("abc", "jr-matron"), token: getToken(t, chief), wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/staff", tt.token, tt.body)
			app.server.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("code = %v; wantCode %v: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func Test_staffApi_destroy(t *testing.T) {
	app := setup(t)

	super := testutil.CreateStaff(t, app.staffRepo, "superuser", "Sam", "Admin", "s3cr3t", access.RoleSuperUser, true)
	testutil.CreateStaff(t, app.staffRepo, "jrmatron", "Mary", "Banda", "s3cr3t", access.RoleJrMatron, true)

	superToken := getToken(t, super)

	tests := []httpTest{
		{name: "cannot delete self", path: "/v1/staff/superuser", token: superToken, wantCode: http.StatusForbidden},
		{name: "delete matron", path: "/v1/staff/jrmatron", token: superToken, wantCode: http.StatusNoContent},
		{name: "already gone", path: "/v1/staff/jrmatron", token: superToken, wantCode: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodDelete, tt.path, tt.token)
			app.server.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("code = %v; wantCode %v: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}
