package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"crudexample/internal/domain"
	"crudexample/internal/domain/models"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations: %v", err)
		}
		conn.Close()
	})
	return conn, mock
}

var personRowColumns = []string{"id", "name", "email", "date_of_birth", "gender", "country_id", "address", "receive_news_letters", "country"}

func TestCountriesAddCountry(t *testing.T) {
	conn, mock := newMock(t)
	repo := CountriesRepository{DB: conn}
	c := models.Country{ID: uuid.New(), Name: "Japan"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO countries (id,name) VALUES (?,?)")).
		WithArgs(c.ID.String(), "Japan").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.AddCountry(context.Background(), c)
	if err != nil {
		t.Fatalf("AddCountry: %v", err)
	}
	if got != c {
		t.Fatalf("got %+v want %+v", got, c)
	}
}

func TestCountriesAddCountryDuplicate(t *testing.T) {
	conn, mock := newMock(t)
	repo := CountriesRepository{DB: conn}

	mock.ExpectExec("INSERT INTO countries").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'USA'"})

	_, err := repo.AddCountry(context.Background(), models.Country{ID: uuid.New(), Name: "USA"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCountriesGetByName(t *testing.T) {
	conn, mock := newMock(t)
	repo := CountriesRepository{DB: conn}
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM countries WHERE name = ? LIMIT 1")).
		WithArgs("USA").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(id.String(), "USA"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM countries WHERE name = ? LIMIT 1")).
		WithArgs("Atlantis").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	got, err := repo.GetCountryByCountryName(context.Background(), "USA")
	if err != nil || got == nil || got.ID != id {
		t.Fatalf("unexpected result %+v, %v", got, err)
	}
	got, err = repo.GetCountryByCountryName(context.Background(), "Atlantis")
	if err != nil || got != nil {
		t.Fatalf("expected nil, got %+v, %v", got, err)
	}
}

func TestCountriesGetAll(t *testing.T) {
	conn, mock := newMock(t)
	repo := CountriesRepository{DB: conn}
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM countries ORDER BY name")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(a.String(), "Canada").AddRow(b.String(), "USA"))

	got, err := repo.GetAllCountries(context.Background())
	if err != nil {
		t.Fatalf("GetAllCountries: %v", err)
	}
	want := []models.Country{{ID: a, Name: "Canada"}, {ID: b, Name: "USA"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("countries mismatch (-want +got):\n%s", diff)
	}
}

func TestPersonsGetAllScansNullableColumns(t *testing.T) {
	conn, mock := newMock(t)
	repo := PersonsRepository{DB: conn}
	p1, p2, country := uuid.New(), uuid.New(), uuid.New()
	dob := time.Date(1990, 10, 5, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(personRowColumns).
		AddRow(p1.String(), "Ursa", "u@x.com", dob, "Female", country.String(), "6 Circle", true, "Canada").
		AddRow(p2.String(), "Nobody", "n@x.com", nil, "", nil, "", false, "")
	mock.ExpectQuery(regexp.QuoteMeta("FROM persons p LEFT JOIN countries c ON c.id = p.country_id ORDER BY p.created_at, p.name")).
		WillReturnRows(rows)

	got, err := repo.GetAllPersons(context.Background())
	if err != nil {
		t.Fatalf("GetAllPersons: %v", err)
	}
	want := []models.Person{
		{ID: p1, Name: "Ursa", Email: "u@x.com", DateOfBirth: dob, Gender: models.GenderFemale, CountryID: country, Address: "6 Circle", ReceiveNewsLetters: true, CountryName: "Canada"},
		{ID: p2, Name: "Nobody", Email: "n@x.com"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("persons mismatch (-want +got):\n%s", diff)
	}
}

func TestPersonsGetByIDMissing(t *testing.T) {
	conn, mock := newMock(t)
	repo := PersonsRepository{DB: conn}
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = ? LIMIT 1")).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(personRowColumns))

	got, err := repo.GetPersonByID(context.Background(), id)
	if err != nil || got != nil {
		t.Fatalf("expected nil, got %+v, %v", got, err)
	}
}

func TestPersonsAddStoresNulls(t *testing.T) {
	conn, mock := newMock(t)
	repo := PersonsRepository{DB: conn}
	p := models.Person{ID: uuid.New(), Name: "Tani", Email: "t@x.com"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO persons (id,name,email,date_of_birth,gender,country_id,address,receive_news_letters) VALUES (?,?,?,?,?,?,?,?)")).
		WithArgs(p.ID.String(), "Tani", "t@x.com", nil, "", nil, "", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if _, err := repo.AddPerson(context.Background(), p); err != nil {
		t.Fatalf("AddPerson: %v", err)
	}
}

func TestPersonsUpdate(t *testing.T) {
	conn, mock := newMock(t)
	repo := PersonsRepository{DB: conn}
	country := uuid.New()
	dob := time.Date(1995, 2, 10, 0, 0, 0, 0, time.UTC)
	p := models.Person{ID: uuid.New(), Name: "Franchot", Email: "f@x.com", DateOfBirth: dob, Gender: models.GenderMale, CountryID: country, ReceiveNewsLetters: true}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE persons SET name = ?, email = ?, date_of_birth = ?, gender = ?, country_id = ?, address = ?, receive_news_letters = ? WHERE id = ?")).
		WithArgs("Franchot", "f@x.com", dob, "Male", country.String(), "", true, p.ID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if _, err := repo.UpdatePerson(context.Background(), p); err != nil {
		t.Fatalf("UpdatePerson: %v", err)
	}
}

func TestPersonsDelete(t *testing.T) {
	conn, mock := newMock(t)
	repo := PersonsRepository{DB: conn}
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM persons WHERE id = ?")).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM persons WHERE id = ?")).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if ok, err := repo.DeletePerson(context.Background(), id); err != nil || !ok {
		t.Fatalf("first delete: %v %v", ok, err)
	}
	if ok, err := repo.DeletePerson(context.Background(), id); err != nil || ok {
		t.Fatalf("second delete: %v %v", ok, err)
	}
}

func TestUsersAddLowercasesEmailAndMapsDuplicate(t *testing.T) {
	conn, mock := newMock(t)
	repo := UsersRepository{DB: conn}
	u := models.User{ID: uuid.New(), PersonName: "Ann", Email: "Ann@X.com", PasswordHash: "h", Role: "User"}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID.String(), "Ann", "ann@x.com", "", "h", "User").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062})

	if _, err := repo.Add(context.Background(), u); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := repo.Add(context.Background(), u); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUsersGetByEmail(t *testing.T) {
	conn, mock := newMock(t)
	repo := UsersRepository{DB: conn}
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ? LIMIT 1")).
		WithArgs("ann@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "person_name", "email", "phone", "password_hash", "role"}).
			AddRow(id.String(), "Ann", "ann@x.com", "", "h", "Admin"))

	got, err := repo.GetByEmail(context.Background(), " ANN@x.com ")
	if err != nil || got == nil {
		t.Fatalf("GetByEmail: %+v %v", got, err)
	}
	if got.ID != id || got.Role != "Admin" {
		t.Fatalf("unexpected user %+v", got)
	}
}
