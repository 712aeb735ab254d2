package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite provides a test suite for end-to-end tests
type E2ETestSuite struct {
	suite.Suite
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	expect  playwright.PlaywrightAssertions
}

// SetupSuite runs once before all tests
func (suite *E2ETestSuite) SetupSuite() {
	pw, err := playwright.Run()
	require.NoError(suite.T(), err, "could not launch playwright")
	suite.pw = pw

	browser, err := pw.Chromium.Launch()
	require.NoError(suite.T(), err, "could not launch chromium")
	suite.browser = browser

	suite.expect = playwright.NewPlaywrightAssertions()
}

// TearDownSuite runs once after all tests
func (suite *E2ETestSuite) TearDownSuite() {
	if suite.browser != nil {
		suite.browser.Close()
	}
	if suite.pw != nil {
		suite.pw.Stop()
	}
}

// SetupTest runs before each test
func (suite *E2ETestSuite) SetupTest() {
	page, err := suite.browser.NewPage()
	require.NoError(suite.T(), err, "could not create page")
	suite.page = page

	_, err = suite.page.Goto(appURL)
	require.NoError(suite.T(), err, "could not navigate to app")
}

// TearDownTest runs after each test
func (suite *E2ETestSuite) TearDownTest() {
	if suite.page != nil {
		suite.page.Close()
	}
}

func (suite *E2ETestSuite) login() {
	// Wait for login form
	err := suite.expect.Locator(suite.page.Locator(".login")).ToBeVisible()
	require.NoError(suite.T(), err, "login form not visible")

	// Fill in credentials
	err = suite.page.Locator("input[name=username]").Fill("testuser")
	require.NoError(suite.T(), err, "failed to fill username")

	err = suite.page.Locator("input[name=password]").Fill("testpass123")
	require.NoError(suite.T(), err, "failed to fill password")

	// Submit login
	err = suite.page.Locator(".login button[type=submit]").Click()
	require.NoError(suite.T(), err, "failed to click login")

	// Wait for redirect to projects page
	err = suite.expect.Locator(suite.page.Locator(".projects")).ToBeVisible()
	require.NoError(suite.T(), err, "did not redirect to projects page after login")
}

func (suite *E2ETestSuite) TestCompleteUserFlow() {
	// Login
	suite.login()

	// Create a project
	err := suite.page.Locator("input[name=name]").Fill("website")
	require.NoError(suite.T(), err, "failed to fill project name")

	err = suite.page.Locator(".projects form button[type=submit]").Click()
	require.NoError(suite.T(), err, "failed to submit project")

	err = suite.expect.Locator(suite.page.Locator("a:text-is('website')")).ToBeVisible()
	require.NoError(suite.T(), err, "created project not listed")

	// Open the tracker
	err = suite.page.Locator("a:text-is('website')").Click()
	require.NoError(suite.T(), err, "failed to open project")

	err = suite.expect.Locator(suite.page.Locator(".tracker")).ToBeVisible()
	require.NoError(suite.T(), err, "tracker page not visible")

	// Run a short session: start, then pause so the draft is submittable
	err = suite.page.Locator("button:text-is('Start')").Click()
	require.NoError(suite.T(), err, "failed to start stopwatch")

	err = suite.expect.Locator(suite.page.Locator(".timer .status")).ToHaveText("Working...")
	require.NoError(suite.T(), err, "stopwatch did not start")

	err = suite.page.Locator("button:text-is('Pause')").Click()
	require.NoError(suite.T(), err, "failed to pause stopwatch")

	err = suite.expect.Locator(suite.page.Locator(".timer .status")).ToHaveText("Paused...")
	require.NoError(suite.T(), err, "stopwatch did not pause")

	// Save the entry
	err = suite.page.Locator("textarea[name=task]").Fill("Reviewed the landing page")
	require.NoError(suite.T(), err, "failed to fill task")

	err = suite.page.Locator("button:text-is('Save entry')").Click()
	require.NoError(suite.T(), err, "failed to save entry")

	// Verify it shows up in the history table
	err = suite.expect.Locator(suite.page.Locator(".history")).ToBeVisible()
	require.NoError(suite.T(), err, "history page not visible")

	err = suite.expect.Locator(suite.page.Locator(".history table tr")).ToHaveCount(2) // header + entry
	require.NoError(suite.T(), err, "entry row count mismatch")

	err = suite.expect.Locator(suite.page.Locator(".history td input[name=task]")).ToHaveValue("Reviewed the landing page")
	require.NoError(suite.T(), err, "task mismatch")
}

func (suite *E2ETestSuite) TestValidationBlocksEmptySubmission() {
	suite.login()

	// Reuse or create the validation project
	if visible, _ := suite.page.Locator("a:text-is('validation')").IsVisible(); !visible {
		err := suite.page.Locator("input[name=name]").Fill("validation")
		require.NoError(suite.T(), err)
		err = suite.page.Locator(".projects form button[type=submit]").Click()
		require.NoError(suite.T(), err)
	}

	err := suite.page.Locator("a:text-is('validation')").Click()
	require.NoError(suite.T(), err)

	// Submit without starting the stopwatch or describing a task
	err = suite.page.Locator("button:text-is('Save entry')").Click()
	require.NoError(suite.T(), err)

	err = suite.expect.Locator(suite.page.Locator("p.warning")).ToHaveCount(2)
	require.NoError(suite.T(), err, "expected both validation warnings")
}

// TestE2ESuite runs the e2e test suite
func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
