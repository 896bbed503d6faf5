package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	echoapi "github.com/stjosephs/hostel/apps/api/echo"
	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/attendance"
	"github.com/stjosephs/hostel/core/duty"
	"github.com/stjosephs/hostel/core/learner"
	"github.com/stjosephs/hostel/core/staff"
	emailsvc "github.com/stjosephs/hostel/services/email"
	inmemdb "github.com/stjosephs/hostel/storage/inmem"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var (
	conf       *core.Config
	validate   *validator.Validate
	translator ut.Translator

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

func TestMain(m *testing.M) {
	conf = core.NewConfig()
	conf.Debug = false
	conf.TestMode = true

	validate = validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	staff.InitValidators(validate, translator)
	learner.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)

	os.Exit(m.Run())
}

type testApp struct {
	server *echoapi.Server

	staffRepo      staff.Repository
	learnerRepo    learner.Repository
	dutyRepo       duty.Repository
	attendanceRepo attendance.Repository
}

func setup(t *testing.T) *testApp {
	db := inmemdb.Open()

	app := &testApp{
		staffRepo:      inmemdb.NewStaffRepository(db),
		learnerRepo:    inmemdb.NewLearnerRepository(db),
		dutyRepo:       inmemdb.NewDutyRepository(db),
		attendanceRepo: inmemdb.NewAttendanceRepository(db),
	}

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	app.server = echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:           conf,
			Logger:         testLogger{t},
			StaffSvc:       staff.NewService(app.staffRepo),
			LearnerSvc:     learner.NewService(app.learnerRepo),
			DutySvc:        duty.NewService(app.dutyRepo, app.learnerRepo, mailSvc, conf),
			AttendanceSvc:  attendance.NewService(app.attendanceRepo, app.learnerRepo),
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		},
	)
	return app
}

type testLogger struct{ t *testing.T }

func (l testLogger) Debug(msg string, args ...interface{}) { l.t.Logf("DEBUG: %s %v", msg, args) }
func (l testLogger) Info(msg string, args ...interface{})  { l.t.Logf("INFO: %s %v", msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.t.Logf("WARN: %s %v", msg, args) }
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Logf("ERROR: %s %v", msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Fatalf("FATAL: %s %v", msg, args) }

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, stf staff.Staff) string {
	claims := echoapi.GetStaffClaims(conf, stf)
	token, err := echoapi.GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
