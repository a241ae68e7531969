package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/stockroom/internal/sqlite"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// testEnv holds isolated config and data directories for one test.
type testEnv struct {
	configDir string
	dataDir   string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	t.Setenv("STOCKROOM_LOG_LEVEL", "disabled")
	t.Setenv("STOCKROOM_BACKEND", "")
	root := t.TempDir()
	return testEnv{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// run executes the root command with the given stdin and arguments and
// returns everything written to stdout and stderr.
func (e testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e testEnv) catalogPath() string {
	return filepath.Join(e.dataDir, types.DefaultCatalogFile)
}

func (e testEnv) writeCatalog(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(e.dataDir, 0o755))
	require.NoError(t, os.WriteFile(e.catalogPath(), []byte(content), 0o644))
}

func (e testEnv) readCatalog(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.catalogPath())
	require.NoError(t, err)
	return string(data)
}

const twoProducts = "id,name,category,price,quantity\n" +
	"1,Pen,Stationery,1.50,100\n" +
	"2,Cup,Kitchen,5.00,20\n"

func TestVersionCmd(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "stockroom v"+Version)
	assert.Contains(t, out, modulePath)
}

func TestInitCmd(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Stockroom initialized successfully")
	assert.Equal(t, types.Header+"\n", env.readCatalog(t))

	data, err := os.ReadFile(filepath.Join(env.configDir, configFileExt))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, types.BackendCSV, cfg.Backend)
	assert.Equal(t, types.DefaultCatalogFile, cfg.CatalogFile)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitCmd_KeepsExistingCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	_, err := env.run(t, "", "init")
	require.NoError(t, err)
	assert.Equal(t, twoProducts, env.readCatalog(t))
}

func TestListCmd(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	out, err := env.run(t, "", "list")
	require.NoError(t, err)
	assert.Equal(t,
		"ID: 1 | Pen | Stationery | 1.50 | Qty: 100\n"+
			"ID: 2 | Cup | Kitchen | 5.00 | Qty: 20\n",
		out)
}

func TestListCmd_CreatesDataDir(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "list")
	require.NoError(t, err)

	info, err := os.Stat(env.dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListCmd_EmptyCatalog(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "", "list")
	require.NoError(t, err)
	assert.Equal(t, "No products.\n", out)

	_, statErr := os.Stat(env.catalogPath())
	assert.True(t, os.IsNotExist(statErr), "read-only commands must not create the catalog")
}

func TestListCmd_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	out, err := env.run(t, "", "--json", "list")
	require.NoError(t, err)

	var got []types.Product
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Cup", got[1].Name)
}

func TestListCmd_MalformedCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts+"3,Bag,Travel\n")

	_, err := env.run(t, "", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidFormat)
	assert.Contains(t, err.Error(), "line 4")
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestAddCmd(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	out, err := env.run(t, "", "add", "3", "Stapler", "Office", "12.7", "4")
	require.NoError(t, err)
	assert.Equal(t, "Added product 3\n", out)
	assert.Equal(t, twoProducts+"3,Stapler,Office,12.70,4\n", env.readCatalog(t))
}

func TestAddCmd_LongNameStaysLoadable(t *testing.T) {
	env := newTestEnv(t)
	name := strings.Repeat("n", 70*1024)

	_, err := env.run(t, "", "add", "1", name, "Bulk", "1", "1")
	require.NoError(t, err)

	out, err := env.run(t, "", "--json", "list")
	require.NoError(t, err)
	var got []types.Product
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, name, got[0].Name)
}

func TestAddCmd_DuplicateIDAccepted(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	_, err := env.run(t, "", "add", "1", "Marker", "Stationery", "2", "5")
	require.NoError(t, err)
	assert.Equal(t, twoProducts+"1,Marker,Stationery,2.00,5\n", env.readCatalog(t))
}

func TestAddCmd_InvalidPrice(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	_, err := env.run(t, "", "add", "3", "Stapler", "Office", "cheap", "4")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidFormat)
	assert.Equal(t, twoProducts, env.readCatalog(t))
}

func TestUpdateCmd(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	out, err := env.run(t, "", "update", "2", "35")
	require.NoError(t, err)
	assert.Equal(t, "Updated product 2\n", out)
	assert.Contains(t, env.readCatalog(t), "2,Cup,Kitchen,5.00,35\n")
}

func TestUpdateCmd_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	_, err := env.run(t, "", "update", "9", "35")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, exitUserError, exitCode(err))
	assert.Equal(t, twoProducts, env.readCatalog(t))
}

func TestDeleteCmd(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	out, err := env.run(t, "", "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "Deleted product 1\n", out)
	assert.Equal(t, "id,name,category,price,quantity\n2,Cup,Kitchen,5.00,20\n", env.readCatalog(t))
}

func TestDeleteCmd_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	_, err := env.run(t, "", "delete", "9")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteCmd_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	out, err := env.run(t, "", "--json", "delete", "2")
	require.NoError(t, err)

	var got types.Product
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, types.Product{ID: 2, Name: "Cup", Category: "Kitchen", Price: 5.00, Quantity: 20}, got)
	assert.Equal(t, "id,name,category,price,quantity\n1,Pen,Stationery,1.50,100\n", env.readCatalog(t))
}

func TestSearchCmd(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	out, err := env.run(t, "", "search", "pE")
	require.NoError(t, err)
	assert.Equal(t, "ID: 1 | Pen | Stationery | 1.50 | Qty: 100\n", out)

	out, err = env.run(t, "", "search")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "ID: "))
}

func TestFilterCmd(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	out, err := env.run(t, "", "filter", "1.00", "2.00")
	require.NoError(t, err)
	assert.Equal(t, "ID: 1 | Pen | Stationery | 1.50 | Qty: 100\n", out)

	out, err = env.run(t, "", "filter", "5", "1")
	require.NoError(t, err)
	assert.Equal(t, "No products.\n", out)

	_, err = env.run(t, "", "filter", "low", "1")
	assert.ErrorIs(t, err, types.ErrInvalidFormat)
}

func TestSortCmd(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	out, err := env.run(t, "", "sort", "quantity")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Cup"), strings.Index(out, "Pen"))
	assert.Equal(t, "id,name,category,price,quantity\n2,Cup,Kitchen,5.00,20\n1,Pen,Stationery,1.50,100\n", env.readCatalog(t))
}

func TestSortCmd_UnknownFieldLeavesCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	_, err := env.run(t, "", "sort", "name")
	require.NoError(t, err)
	assert.Equal(t, twoProducts, env.readCatalog(t))
}

func TestShell_RunsByDefault(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	out, err := env.run(t, "2\n3\nBag\nTravel\n9.99\n1\n8\n")
	require.NoError(t, err)
	assert.Contains(t, out, "=== INVENTORY MANAGER ===")
	assert.Contains(t, out, "Product added.")
	assert.Contains(t, out, "Catalog saved.")
	assert.Equal(t, twoProducts+"3,Bag,Travel,9.99,1\n", env.readCatalog(t))
}

func TestShellCmd_ReadOnlySessionReproducesFile(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	_, err := env.run(t, "7\n1.00\n2.00\n5\ncup\n8\n", "shell")
	require.NoError(t, err)
	assert.Equal(t, twoProducts, env.readCatalog(t))
}

func TestSQLiteBackend(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("STOCKROOM_BACKEND", types.BackendSQLite)

	_, err := env.run(t, "", "add", "1", "Pen", "Stationery", "1.5", "100")
	require.NoError(t, err)
	_, err = env.run(t, "", "add", "2", "Cup", "Kitchen", "5", "20")
	require.NoError(t, err)

	out, err := env.run(t, "", "list")
	require.NoError(t, err)
	assert.Equal(t,
		"ID: 1 | Pen | Stationery | 1.50 | Qty: 100\n"+
			"ID: 2 | Cup | Kitchen | 5.00 | Qty: 20\n",
		out)

	_, err = os.Stat(filepath.Join(env.dataDir, sqlite.DBFileName))
	require.NoError(t, err)
	_, err = os.Stat(env.catalogPath())
	assert.True(t, os.IsNotExist(err), "sqlite backend must not write the csv file")

	out, err = env.run(t, "", "--json", "status")
	require.NoError(t, err)
	var report statusReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, types.BackendSQLite, report.Backend)
	assert.Equal(t, 2, report.Products)
	require.NotNil(t, report.LastSave)
	assert.Equal(t, 2, report.LastSave.ProductCount)
}

func TestStatusCmd_CSV(t *testing.T) {
	env := newTestEnv(t)
	env.writeCatalog(t, twoProducts)

	out, err := env.run(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Backend:   csv")
	assert.Contains(t, out, "Location:  "+env.catalogPath())
	assert.Contains(t, out, "Products:  2")
}

func TestConfigFile_SelectsBackendAndCatalogFile(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(env.configDir, configFileExt),
		[]byte("backend: csv\ncatalog_file: stock.csv\n"),
		0o644,
	))

	_, err := env.run(t, "", "add", "1", "Pen", "Stationery", "1.5", "100")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.dataDir, "stock.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,name,category,price,quantity\n1,Pen,Stationery,1.50,100\n", string(data))
}

func TestUnknownBackend(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("STOCKROOM_BACKEND", "postgres")

	_, err := env.run(t, "", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestArgumentValidation(t *testing.T) {
	env := newTestEnv(t)
	tests := [][]string{
		{"add", "1", "Pen"},
		{"update", "1"},
		{"delete"},
		{"filter", "1"},
		{"sort"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := env.run(t, "", args...)
			assert.Error(t, err)
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitUserError, exitCode(types.ErrNotFound))
	assert.Equal(t, exitUserError, exitCode(&types.FormatError{Input: "x"}))
	assert.Equal(t, exitSysError, exitCode(types.ErrStorage))
}
