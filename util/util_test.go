package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "show", "shows"), ShouldEqual, "1 show")
		So(Quantify(2, "show", "shows"), ShouldEqual, "2 shows")
		So(Quantify(0, "show", "shows"), ShouldEqual, "0 shows")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("latest"), ShouldEqual, "Latest")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestStack(t *testing.T) {
	Convey("Given an empty stack", t, func() {
		var s Stack[string]

		Convey("Pop and Peek report emptiness", func() {
			_, ok := s.Pop()
			So(ok, ShouldBeFalse)
			_, ok = s.Peek()
			So(ok, ShouldBeFalse)
		})

		Convey("Elements come back in reverse order", func() {
			s.Push("category")
			s.Push("show")
			So(s.Len(), ShouldEqual, 2)

			top, _ := s.Peek()
			So(top, ShouldEqual, "show")

			first, _ := s.Pop()
			second, _ := s.Pop()
			So([]string{first, second}, ShouldResemble, []string{"show", "category"})
			So(s.Len(), ShouldEqual, 0)
		})
	})
}
