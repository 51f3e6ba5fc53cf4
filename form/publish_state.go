package form

type PublishState string

const (
	PublishStateUnpublished  PublishState = "unpublished"
	PublishStateAccepting    PublishState = "accepting"
	PublishStateNotAccepting PublishState = "not_accepting"
)

func publishStateOf(published, accepting bool) PublishState {
	if !published {
		return PublishStateUnpublished
	}
	if accepting {
		return PublishStateAccepting
	}
	return PublishStateNotAccepting
}
