package model

import "time"

// Sample values shared by tests across packages and by the reference
// server's seed data.
var (
	SampleWithRequiredData = TimeEntry{
		ID:            3305,
		Date:          Ptr(time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)),
		MinutesWorked: Ptr(82504),
		TaskName:      Ptr("Intranet azure"),
	}

	SampleWithPartialData = TimeEntry{
		ID:            39956,
		Date:          Ptr(time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)),
		MinutesWorked: Ptr(2586),
		TaskName:      Ptr("Uganda Rial"),
	}

	SampleWithFullData = TimeEntry{
		ID:            30102,
		Date:          Ptr(time.Date(2023, 5, 3, 0, 0, 0, 0, time.UTC)),
		MinutesWorked: Ptr(88052),
		TaskName:      Ptr("platforms"),
		User:          &UserRef{ID: 1},
	}

	SampleWithNewData = NewTimeEntry{
		Date:          Ptr(time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)),
		MinutesWorked: Ptr(43727),
		TaskName:      Ptr("Kansas"),
	}
)
