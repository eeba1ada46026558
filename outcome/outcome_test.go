package outcome

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOutcome(t *testing.T) {
	Convey("Ok outcomes", t, func() {
		o := Ok(42).WithMessage("created")

		So(o.Kind(), ShouldEqual, KindOk)
		So(o.IsOk(), ShouldBeTrue)
		So(o.Err(), ShouldBeNil)
		So(o.Message(), ShouldEqual, "created")
		So(o.Value().MustGet(), ShouldEqual, 42)

		_, declined := o.Decline()
		So(declined, ShouldBeFalse)
	})

	Convey("Declined outcomes", t, func() {
		o := Declined[int]("bad creds", nil)

		So(o.IsDeclined(), ShouldBeTrue)
		So(o.IsOk(), ShouldBeFalse)
		So(o.Value().IsAbsent(), ShouldBeTrue)

		d, ok := o.Decline()
		So(ok, ShouldBeTrue)
		So(d.Display(), ShouldEqual, "bad creds")
		So(IsDecline(o.Err()), ShouldBeTrue)
		So(IsTransport(o.Err()), ShouldBeFalse)
	})

	Convey("Failed outcomes keep their cause", t, func() {
		o := Failed[string]("login", context.DeadlineExceeded)

		So(o.IsFailed(), ShouldBeTrue)
		So(errors.Is(o.Err(), context.DeadlineExceeded), ShouldBeTrue)
		So(o.Err().Error(), ShouldEqual, "login: context deadline exceeded")
		So(IsTransport(fmt.Errorf("wrapped: %w", o.Err())), ShouldBeTrue)
	})

	Convey("The zero value is a failure, never ok", t, func() {
		var o Outcome[int]
		So(o.IsFailed(), ShouldBeTrue)
		_, ok := o.Get()
		So(ok, ShouldBeFalse)
		cause, ok := o.Transport()
		So(ok, ShouldBeTrue)
		So(cause, ShouldNotBeNil)
	})

	Convey("Match calls exactly one handler", t, func() {
		var calls []string
		record := func(o Outcome[int]) {
			o.Match(
				func(int) { calls = append(calls, "ok") },
				func(*Decline) { calls = append(calls, "declined") },
				func(*TransportError) { calls = append(calls, "failed") },
			)
		}

		record(Ok(1))
		record(Declined[int]("", nil))
		record(Failed[int]("x", nil))

		So(calls, ShouldResemble, []string{"ok", "declined", "failed"})
	})

	Convey("Map transforms only ok payloads", t, func() {
		double := func(n int) string { return fmt.Sprint(n * 2) }

		So(Map(Ok(21), double).Value().MustGet(), ShouldEqual, "42")

		declined := Map(Declined[int]("nope", []string{"a"}), double)
		d, ok := declined.Decline()
		So(ok, ShouldBeTrue)
		So(d.Errors, ShouldResemble, []string{"a"})

		So(Map(Failed[int]("op", nil), double).IsFailed(), ShouldBeTrue)
	})
}

func TestDeclineDisplay(t *testing.T) {
	Convey("Given a decline", t, func() {
		Convey("Field errors take precedence over the message", func() {
			d := &Decline{Message: "invalid data", Errors: []string{"email taken", "password too short"}}
			So(d.Display(), ShouldEqual, "email taken\npassword too short")
			So(d.Error(), ShouldEqual, "email taken; password too short")
		})

		Convey("Blank errors fall back to the message", func() {
			d := &Decline{Message: "invalid data", Errors: []string{" ", ""}}
			So(d.Display(), ShouldEqual, "invalid data")
		})

		Convey("An empty decline uses the default", func() {
			So((&Decline{}).Display(), ShouldEqual, DefaultDeclineMessage)
		})
	})
}

func TestKindString(t *testing.T) {
	Convey("Kinds have names", t, func() {
		So(KindOk.String(), ShouldEqual, "ok")
		So(KindDeclined.String(), ShouldEqual, "declined")
		So(KindFailed.String(), ShouldEqual, "failed")
		So(Kind(9).String(), ShouldEqual, "Kind(9)")
	})
}
