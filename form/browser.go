package form

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/rsvpweb/rsvp-contract-tests/framework"
	"github.com/rsvpweb/rsvp-contract-tests/submit"
)

const elementLookupTimeout = time.Second * 5

// BrowserDriver drives the live RSVP form in a browser. Every outbound
// request the page makes goes through a hijack handler that consults the
// submission recorder, so a submission attempt is observed (and, unless
// real submissions are allowed, answered synthetically) without the page
// noticing any difference.
type BrowserDriver struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	router   *rod.HijackRouter
	sel      Selectors
	recorder *submit.Recorder
	logger   framework.Logger

	// last selected option per choice group, for NotifyChange
	lastChoice map[ChoiceGroup]string
}

// NewBrowserDriver launches a browser, installs the request interceptor, and
// opens the page under test.
func NewBrowserDriver(
	pageURL string,
	sel Selectors,
	recorder *submit.Recorder,
	headless bool,
	logger framework.Logger,
) (*BrowserDriver, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}

	l := launcher.New().Headless(headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("could not connect to browser: %w", err)
	}

	d := &BrowserDriver{
		launcher:   l,
		browser:    browser,
		sel:        sel,
		recorder:   recorder,
		logger:     framework.LoggerWithPrefix(logger, "[browser] "),
		lastChoice: make(map[ChoiceGroup]string),
	}

	d.router = browser.HijackRequests()
	if err := d.router.Add("*", "", d.handleRequest); err != nil {
		_ = browser.Close()
		l.Cleanup()
		return nil, fmt.Errorf("could not install request interceptor: %w", err)
	}
	go d.router.Run()

	page, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("could not open page %s: %w", pageURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("page %s did not finish loading: %w", pageURL, err)
	}
	d.page = page

	return d, nil
}

func (d *BrowserDriver) handleRequest(ctx *rod.Hijack) {
	url := ctx.Request.URL().String()
	switch d.recorder.Observe(url) {
	case submit.PassThrough:
		d.logger.Printf("allowing real submission to %s", url)
		if err := ctx.LoadResponse(http.DefaultClient, true); err != nil {
			d.logger.Printf("real submission to %s failed: %s", url, err)
		}
	case submit.ShortCircuit:
		d.logger.Printf("short-circuiting submission to %s", url)
		ctx.Response.Payload().ResponseCode = http.StatusOK
		ctx.Response.SetBody("")
	default:
		ctx.ContinueRequest(&proto.FetchContinueRequest{})
	}
}

type resetArgs struct {
	Form    string   `json:"form"`
	Success string   `json:"success"`
	Texts   []string `json:"texts"`
	Choices []string `json:"choices"`
}

// Clears every field, restores the form's default visibility, hides the
// success message, and strips inline error highlighting left by a prior
// validation run.
const resetScript = `(sel) => {
	for (const s of sel.texts) {
		const el = document.querySelector(s);
		if (el) el.value = "";
	}
	for (const s of sel.choices) {
		const el = document.querySelector(s);
		if (el) el.checked = false;
	}
	const form = document.querySelector(sel.form);
	if (form) {
		form.style.display = "";
		for (const el of form.querySelectorAll("input, textarea, select")) {
			el.style.border = "";
			el.style.borderColor = "";
		}
	}
	const success = document.querySelector(sel.success);
	if (success) success.style.display = "none";
}`

func (d *BrowserDriver) Reset(ctx context.Context) error {
	args := resetArgs{
		Form:    d.sel.Form,
		Success: d.sel.SuccessMessage,
		Choices: []string{d.sel.AttendingYes, d.sel.AttendingNo, d.sel.TaxiYes, d.sel.TaxiNo},
	}
	for _, field := range TextFields {
		args.Texts = append(args.Texts, d.sel.Texts[field])
	}
	d.lastChoice = make(map[ChoiceGroup]string)
	if _, err := d.page.Context(ctx).Eval(resetScript, args); err != nil {
		return fmt.Errorf("could not reset form state: %w", err)
	}
	return nil
}

func (d *BrowserDriver) SetText(ctx context.Context, field string, value string) error {
	selector, ok := d.sel.Texts[field]
	if !ok {
		return fmt.Errorf("no selector is defined for field %q", field)
	}
	el, err := d.element(ctx, selector)
	if err != nil {
		return err
	}
	if _, err := el.Eval(`(v) => { this.value = v }`, value); err != nil {
		return fmt.Errorf("could not set %s: %w", field, err)
	}
	return nil
}

func (d *BrowserDriver) SelectChoice(ctx context.Context, group ChoiceGroup, state ChoiceState) error {
	delete(d.lastChoice, group)
	if state == ChoiceNone {
		yes, no := d.sel.choicePair(group)
		for _, selector := range []string{yes, no} {
			el, err := d.element(ctx, selector)
			if err != nil {
				return err
			}
			if _, err := el.Eval(`() => { this.checked = false }`); err != nil {
				return fmt.Errorf("could not deselect %s: %w", selector, err)
			}
		}
		return nil
	}

	selector := d.sel.choice(group, state)
	el, err := d.element(ctx, selector)
	if err != nil {
		return err
	}
	if _, err := el.Eval(`() => { this.checked = true }`); err != nil {
		return fmt.Errorf("could not select %s: %w", selector, err)
	}
	d.lastChoice[group] = selector
	return nil
}

func (d *BrowserDriver) NotifyChange(ctx context.Context, group ChoiceGroup) error {
	selector, ok := d.lastChoice[group]
	if !ok {
		return nil
	}
	el, err := d.element(ctx, selector)
	if err != nil {
		return err
	}
	if _, err := el.Eval(`() => this.dispatchEvent(new Event("change", { bubbles: true }))`); err != nil {
		return fmt.Errorf("could not raise change notification on %s: %w", selector, err)
	}
	return nil
}

func (d *BrowserDriver) Submit(ctx context.Context) error {
	el, err := d.element(ctx, d.sel.Form)
	if err != nil {
		return err
	}
	// requestSubmit runs the form's own validation and submit handlers, the
	// same as a user clicking the submit button.
	if _, err := el.Eval(`() => { this.requestSubmit ? this.requestSubmit() : this.submit() }`); err != nil {
		return fmt.Errorf("could not trigger form submission: %w", err)
	}
	return nil
}

func (d *BrowserDriver) Close() error {
	if d.router != nil {
		_ = d.router.Stop()
	}
	err := d.browser.Close()
	d.launcher.Cleanup()
	return err
}

func (d *BrowserDriver) element(ctx context.Context, selector string) (*rod.Element, error) {
	el, err := d.page.Context(ctx).Timeout(elementLookupTimeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("could not find element %q: %w", selector, err)
	}
	return el, nil
}

// AwaitPageReady polls the page URL until it responds with a success status,
// so the run fails fast with a clear message when the page is not deployed or
// not reachable, rather than timing out inside the browser.
func AwaitPageReady(pageURL string, timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Checking RSVP page at %s", pageURL)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := http.DefaultClient.Get(pageURL)
		if err == nil {
			fmt.Fprintln(output)
			if resp.Body != nil {
				resp.Body.Close()
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("RSVP page returned status code %d", resp.StatusCode)
			}
			return nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(time.Millisecond * 100)
	}
}
