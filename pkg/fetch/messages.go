package fetch

// HumanMessage maps a failure to its fixed user-facing text. Raw transport
// errors and response bodies never appear in the result.
func HumanMessage(f *Failure) string {
	if f == nil {
		return ""
	}
	switch f.Kind {
	case NetworkUnreachable:
		return networkErrorMessage
	case NotFound:
		return notFoundMessage(f.Resource)
	case ServerError:
		return serverErrorMessage
	case HTTPError:
		return httpErrorMessage(f.Status)
	default:
		return parseErrorMessage
	}
}
